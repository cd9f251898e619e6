package logger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

const DefaultServiceName = "aplus-academy"

// JSON output keeps the first entries of each message per tick and then
// every hundredth.
const (
	samplingTick       = time.Second
	samplingFirst      = 100
	samplingThereafter = 100
)

// Config is read from LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
type Config struct {
	Level  string // debug, info, warn, error, fatal
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// New builds the process logger. Every entry carries the service name.
// A nil config yields JSON at info level on stdout.
func New(config *Config, serviceName string) (*zap.Logger, error) {
	if config == nil {
		config = &Config{}
	}

	level, err := parseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	sink, closeSink, err := zap.Open(outputPath(config.Output))
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", config.Output, err)
	}
	errSink, _, err := zap.Open(errorPath(config.Output))
	if err != nil {
		closeSink()
		return nil, fmt.Errorf("failed to open error output: %w", err)
	}

	core := zapcore.NewCore(encoder(config.Format), sink, zap.NewAtomicLevelAt(level))
	opts := []zap.Option{zap.ErrorOutput(errSink), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if isConsole(config.Format) {
		opts = append(opts, zap.Development())
	} else {
		core = zapcore.NewSamplerWithOptions(core, samplingTick, samplingFirst, samplingThereafter)
	}

	return zap.New(core, opts...).With(zap.String(FieldService, serviceName)), nil
}

func isConsole(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "console")
}

func encoder(format string) zapcore.Encoder {
	if isConsole(format) {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// outputPath maps LOG_OUTPUT onto a zap sink URL; anything other than the
// two standard streams is a file path.
func outputPath(output string) string {
	switch o := strings.TrimSpace(output); o {
	case "", "stdout":
		return "stdout"
	default:
		return o
	}
}

// errorPath is where zap reports its own failures. Internal errors go to
// the log file when one is configured, stderr otherwise.
func errorPath(output string) string {
	if p := outputPath(output); p != "stdout" {
		return p
	}
	return "stderr"
}

func parseLevel(level string) (zapcore.Level, error) {
	l := strings.ToLower(strings.TrimSpace(level))
	switch l {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "debug", "info", "warn", "error", "fatal":
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(l)); err != nil {
			return zapcore.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
		}
		return lvl, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}
