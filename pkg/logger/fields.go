package logger

// Standard field names for consistent logging.
const (
	FieldService   = "service"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldTable     = "table"
	FieldGroupID   = "group_id"
	FieldStudentID = "student_id"
	FieldTeacherID = "teacher_id"
	FieldRange     = "range"
	FieldLogin     = "login"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency"
	FieldID        = "id"
	FieldAddr      = "addr"
	FieldHost      = "host"
	FieldDatabase  = "database"
	FieldAccount   = "account"
)
