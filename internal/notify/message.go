// Package notify delivers staff notifications for public-site submissions.
package notify

import (
	"strconv"
	"strings"
	"time"
)

const timeLayout = "02.01.2006 15:04"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML makes user input safe for Telegram's HTML parse mode.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

type Registration struct {
	FullName   string
	Age        int
	Phone      string
	CourseName string
}

type Contact struct {
	Name    string
	Email   string
	Message string
}

func RegistrationMessage(r Registration, at time.Time) string {
	var b strings.Builder
	b.WriteString("🆕 <b>Yangi ro'yxatdan o'tish</b>\n\n")
	b.WriteString("👤 <b>Ism:</b> " + EscapeHTML(r.FullName) + "\n")
	b.WriteString("📅 <b>Yosh:</b> " + strconv.Itoa(r.Age) + "\n")
	b.WriteString("📱 <b>Telefon:</b> " + EscapeHTML(r.Phone) + "\n")
	b.WriteString("📚 <b>Kurs:</b> " + EscapeHTML(r.CourseName) + "\n\n")
	b.WriteString("⏰ <i>Vaqt: " + at.Format(timeLayout) + "</i>")
	return b.String()
}

func ContactMessage(c Contact, at time.Time) string {
	var b strings.Builder
	b.WriteString("📧 <b>Yangi xabar (Aloqa)</b>\n\n")
	b.WriteString("👤 <b>Ism:</b> " + EscapeHTML(c.Name) + "\n")
	b.WriteString("📮 <b>Email:</b> " + EscapeHTML(c.Email) + "\n")
	b.WriteString("💬 <b>Xabar:</b>\n\n")
	b.WriteString(EscapeHTML(c.Message) + "\n\n")
	b.WriteString("⏰ <i>Vaqt: " + at.Format(timeLayout) + "</i>")
	return b.String()
}
