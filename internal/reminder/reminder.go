package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/conectanegocios/conecta/internal/notify"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// pendingInvite is a provisioned member that has not completed registration.
type pendingInvite struct {
	Nome  string
	Email string
	Token string
}

// RunReminderJob re-emits the invitation notification for members that were
// provisioned more than reminderDays ago and still have an unconsumed token.
// The job only reads and logs, so it is safe to run repeatedly.
//
// Returns the number of reminders emitted.
func RunReminderJob(ctx context.Context, pool *pgxpool.Pool, notifier notify.Notifier, baseURL string, reminderDays int) (int, error) {
	log.Info().
		Int("reminder_days", reminderDays).
		Msg("Starting invite reminder job")

	startTime := time.Now()

	invites, err := findPendingInvites(ctx, pool, reminderDays)
	if err != nil {
		return 0, fmt.Errorf("failed to find pending invites: %w", err)
	}

	sent := 0
	for _, inv := range invites {
		err := notifier.SendInvitation(ctx, notify.Invitation{
			Nome:        inv.Nome,
			Email:       inv.Email,
			ConviteLink: fmt.Sprintf("%s/cadastro/%s", baseURL, inv.Token),
			Reminder:    true,
		})
		if err != nil {
			log.Warn().Err(err).Str("email", inv.Email).Msg("Failed to send invite reminder")
			continue
		}
		sent++
	}

	log.Info().
		Int("reminders_sent", sent).
		Int("pending_invites", len(invites)).
		Dur("duration", time.Since(startTime)).
		Msg("Invite reminder job completed")

	return sent, nil
}

func findPendingInvites(ctx context.Context, pool *pgxpool.Pool, reminderDays int) ([]pendingInvite, error) {
	rows, err := pool.Query(ctx, `
		SELECT nome, email, token
		FROM membros
		WHERE token_usado = FALSE
		  AND created_at < NOW() - INTERVAL '1 day' * $1
		ORDER BY created_at
	`, reminderDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []pendingInvite
	for rows.Next() {
		var inv pendingInvite
		if err := rows.Scan(&inv.Nome, &inv.Email, &inv.Token); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}

	return invites, rows.Err()
}
