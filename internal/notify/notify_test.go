package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Tom &amp; &quot;Jerry&quot;&lt;/b&gt; &#039;x&#039;", EscapeHTML(`<b>Tom & "Jerry"</b> 'x'`))
	assert.Equal(t, "plain", EscapeHTML("plain"))
}

func TestRegistrationMessage(t *testing.T) {
	at := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	msg := RegistrationMessage(Registration{FullName: "Ali <Valiyev>", Age: 15, Phone: "+998901234567", CourseName: "IELTS"}, at)

	assert.True(t, strings.HasPrefix(msg, "🆕 <b>Yangi ro'yxatdan o'tish</b>"))
	assert.Contains(t, msg, "<b>Ism:</b> Ali &lt;Valiyev&gt;\n")
	assert.Contains(t, msg, "<b>Yosh:</b> 15\n")
	assert.Contains(t, msg, "<b>Kurs:</b> IELTS\n")
	assert.True(t, strings.HasSuffix(msg, "<i>Vaqt: 15.10.2026 09:30</i>"))
}

func TestContactMessage(t *testing.T) {
	at := time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)
	msg := ContactMessage(Contact{Name: "Aziza", Email: "a@example.com", Message: "1 < 2"}, at)

	assert.Contains(t, msg, "<b>Email:</b> a@example.com\n")
	assert.Contains(t, msg, "\n\n1 &lt; 2\n\n")
}

func TestTelegramSend(t *testing.T) {
	sent := make(chan map[string]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"A+","username":"aplus_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			require.NoError(t, r.ParseForm())
			sent <- map[string]string{
				"chat_id":    r.PostForm.Get("chat_id"),
				"text":       r.PostForm.Get("text"),
				"parse_mode": r.PostForm.Get("parse_mode"),
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"group"},"text":"hi"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tg, err := NewTelegram("token", 42, srv.URL+"/bot%s/%s", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, tg.Send(context.Background(), "<b>hi</b>"))
	got := <-sent
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "<b>hi</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestTelegramSendCancelled(t *testing.T) {
	tg := &Telegram{chatID: 1, log: zap.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tg.Send(ctx, "x"), context.Canceled)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Send(context.Background(), "ignored"))
}
