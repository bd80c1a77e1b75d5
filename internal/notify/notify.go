package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Invitation contains all information needed to invite an approved applicant
// to complete their registration.
type Invitation struct {
	Nome        string
	Email       string
	ConviteLink string
	Reminder    bool
}

// Notifier delivers invitation messages to applicants.
type Notifier interface {
	SendInvitation(ctx context.Context, inv Invitation) error
}

// LogNotifier is the stub delivery channel: it writes the invitation email
// as structured log lines instead of sending real mail. Failures never
// propagate to the caller since there is nothing that can fail.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed Notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SendInvitation logs the invitation that a real mailer would send.
func (n *LogNotifier) SendInvitation(ctx context.Context, inv Invitation) error {
	subject := "Bem-vindo ao Grupo de Networking!"
	if inv.Reminder {
		subject = "Lembrete: complete seu cadastro no Grupo de Networking"
	}

	log.Info().
		Str("to", inv.Email).
		Str("subject", subject).
		Str("nome", inv.Nome).
		Str("convite_link", inv.ConviteLink).
		Bool("reminder", inv.Reminder).
		Msg("Invitation email (simulated)")

	return nil
}
