// Package mailer renders booking notifications and hands them to a mail relay.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
	"github.com/DyutiRaman/psyche-connect-app/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindReminder     Kind = "reminder"
)

var ErrUnknownKind = errors.New("unknown notification kind")

// Notification is one booking email as requested by the dashboard.
type Notification struct {
	Name          string
	Email         string
	PreferredTime string
	CallType      string
	MeetingLink   string
	Kind          Kind
}

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Sender
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Mailer struct {
	templates *template.Template
	sender    Sender
	from      string
	practice  string
	clinician string
}

func New(cfg config.Mail, sender Sender) (*Mailer, error) {
	const op = "mailer.New"

	t, err := template.New("mailer").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: parse templates: %w", op, err)
	}

	from := cfg.From
	if from != "" && !strings.Contains(from, "<") {
		from = (&mail.Address{Name: cfg.Clinician + " - " + cfg.PracticeName, Address: from}).String()
	}

	return &Mailer{
		templates: t,
		sender:    sender,
		from:      from,
		practice:  cfg.PracticeName,
		clinician: cfg.Clinician,
	}, nil
}

// Compose renders the message for n without sending it.
func (m *Mailer) Compose(n Notification) (Message, error) {
	const op = "mailer.Compose"

	var subject string

	switch n.Kind {
	case KindConfirmation:
		subject = "Booking Confirmation - " + m.practice
	case KindReminder:
		subject = "Appointment Reminder - " + m.practice
	default:
		return Message{}, fmt.Errorf("%s: %w: %q", op, ErrUnknownKind, n.Kind)
	}

	data := struct {
		Practice     string
		Clinician    string
		Confirmation bool
		Name         string
		When         string
		CallType     string
		MeetingLink  string
	}{
		Practice:     m.practice,
		Clinician:    m.clinician,
		Confirmation: n.Kind == KindConfirmation,
		Name:         n.Name,
		When:         FriendlyTime(n.PreferredTime),
		CallType:     titleCase(n.CallType),
		MeetingLink:  n.MeetingLink,
	}

	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, "booking.html", data); err != nil {
		return Message{}, fmt.Errorf("%s: %w", op, err)
	}

	return Message{
		From:    m.from,
		To:      n.Email,
		Subject: subject,
		HTML:    buf.String(),
	}, nil
}

// Notify renders n and sends it through the configured relay.
func (m *Mailer) Notify(ctx context.Context, n Notification) error {
	const op = "mailer.Notify"

	msg, err := m.Compose(n)
	if err != nil {
		return err
	}

	if err = m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// FriendlyTime formats s for humans, or returns it unchanged if it does not parse.
func FriendlyTime(s string) string {
	t, ok := models.ParsePreferredTime(s)
	if !ok {
		return s
	}

	return t.Format("Monday, 2 January 2006 at 3:04 PM")
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
