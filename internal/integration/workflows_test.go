package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/conectanegocios/conecta/internal/intentions"
	"github.com/conectanegocios/conecta/internal/members"
	"github.com/conectanegocios/conecta/internal/notify"
	"github.com/conectanegocios/conecta/internal/referrals"
	"github.com/conectanegocios/conecta/internal/reminder"
	"github.com/conectanegocios/conecta/internal/token"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

// captureNotifier records invitations instead of logging them.
type captureNotifier struct {
	mu          sync.Mutex
	invitations []notify.Invitation
}

func (n *captureNotifier) SendInvitation(ctx context.Context, inv notify.Invitation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invitations = append(n.invitations, inv)
	return nil
}

func (n *captureNotifier) sent() []notify.Invitation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Invitation(nil), n.invitations...)
}

func submitIntention(t *testing.T, service *intentions.Service, email string) *intentions.Intention {
	t.Helper()
	intention, err := service.Submit(context.Background(), intentions.SubmitRequest{
		Nome:      "Jane Doe",
		Email:     email,
		Empresa:   "Acme",
		Motivacao: "Quero expandir minha rede de contatos de negócios",
	})
	require.NoError(t, err)
	return intention
}

// activateMember walks one applicant through intake, approval and
// registration completion, returning the activated member.
func activateMember(t *testing.T, pool *pgxpool.Pool, email string) *members.Member {
	t.Helper()

	intentionService := intentions.NewService(pool, testBaseURL, &captureNotifier{})
	memberService := members.NewService(pool)

	intention := submitIntention(t, intentionService, email)
	result, err := intentionService.Decide(context.Background(), intention.ID, intentions.StatusAprovado)
	require.NoError(t, err)
	require.NotNil(t, result.Membro)

	telefone := "11999999999"
	member, err := memberService.Complete(context.Background(), members.CompleteRequest{
		Token:    result.Membro.Token,
		Telefone: &telefone,
	})
	require.NoError(t, err)
	return member
}

func TestIntentionSubmit_DuplicateEmailConflicts(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	service := intentions.NewService(pool, testBaseURL, &captureNotifier{})

	first := submitIntention(t, service, "jane@x.com")
	require.Equal(t, intentions.StatusPendente, first.Status)
	require.NotEmpty(t, first.ID)

	_, err := service.Submit(context.Background(), intentions.SubmitRequest{
		Nome:      "Jane Again",
		Email:     "jane@x.com",
		Empresa:   "Other Co",
		Motivacao: "Tentando me cadastrar uma segunda vez no grupo",
	})
	require.ErrorIs(t, err, intentions.ErrEmailConflict)
}

func TestIntentionDecide_ApprovalProvisionsMemberAndNotifies(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	notifier := &captureNotifier{}
	service := intentions.NewService(pool, testBaseURL, notifier)

	intention := submitIntention(t, service, "jane@x.com")

	result, err := service.Decide(context.Background(), intention.ID, intentions.StatusAprovado)
	require.NoError(t, err)
	require.Equal(t, intentions.StatusAprovado, result.Intencao.Status)

	require.NotNil(t, result.Membro)
	require.True(t, token.IsWellFormed(result.Membro.Token))
	require.False(t, result.Membro.TokenUsado)
	require.Equal(t, testBaseURL+"/cadastro/"+result.Membro.Token, result.ConviteLink)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	require.Equal(t, "jane@x.com", sent[0].Email)
	require.Equal(t, result.ConviteLink, sent[0].ConviteLink)
	require.False(t, sent[0].Reminder)

	// Exactly one member row exists for the approval.
	var count int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM membros WHERE email = $1`, "jane@x.com").Scan(&count))
	require.Equal(t, 1, count)
}

func TestIntentionDecide_RejectionCreatesNoMember(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	notifier := &captureNotifier{}
	service := intentions.NewService(pool, testBaseURL, notifier)

	intention := submitIntention(t, service, "jane@x.com")

	result, err := service.Decide(context.Background(), intention.ID, intentions.StatusRecusado)
	require.NoError(t, err)
	require.Equal(t, intentions.StatusRecusado, result.Intencao.Status)
	require.Nil(t, result.Membro)
	require.Empty(t, result.ConviteLink)
	require.Empty(t, notifier.sent())

	var count int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM membros`).Scan(&count))
	require.Zero(t, count)
}

func TestIntentionDecide_TerminalStateIsLocked(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	service := intentions.NewService(pool, testBaseURL, &captureNotifier{})
	intention := submitIntention(t, service, "jane@x.com")

	_, err := service.Decide(context.Background(), intention.ID, intentions.StatusRecusado)
	require.NoError(t, err)

	_, err = service.Decide(context.Background(), intention.ID, intentions.StatusAprovado)
	require.ErrorIs(t, err, intentions.ErrAlreadyDecided)
}

func TestIntentionList_FilterAndOrder(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	service := intentions.NewService(pool, testBaseURL, &captureNotifier{})

	first := submitIntention(t, service, "first@x.com")
	second := submitIntention(t, service, "second@x.com")

	_, err := service.Decide(context.Background(), first.ID, intentions.StatusRecusado)
	require.NoError(t, err)

	all, err := service.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := service.List(context.Background(), intentions.StatusPendente, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.ID, pending[0].ID)
}

func TestMemberComplete_SecondCallFails(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	intentionService := intentions.NewService(pool, testBaseURL, &captureNotifier{})
	memberService := members.NewService(pool)

	intention := submitIntention(t, intentionService, "jane@x.com")
	result, err := intentionService.Decide(context.Background(), intention.ID, intentions.StatusAprovado)
	require.NoError(t, err)

	inviteToken := result.Membro.Token

	inspection, err := memberService.InspectToken(context.Background(), inviteToken)
	require.NoError(t, err)
	require.Equal(t, "jane@x.com", inspection.Email)
	require.False(t, inspection.TokenUsado)

	telefone := "11999999999"
	member, err := memberService.Complete(context.Background(), members.CompleteRequest{
		Token:    inviteToken,
		Telefone: &telefone,
	})
	require.NoError(t, err)
	require.True(t, member.TokenUsado)
	require.NotNil(t, member.Telefone)
	require.Equal(t, "11999999999", *member.Telefone)

	_, err = memberService.Complete(context.Background(), members.CompleteRequest{Token: inviteToken})
	require.ErrorIs(t, err, members.ErrTokenUsed)

	_, err = memberService.InspectToken(context.Background(), inviteToken)
	require.ErrorIs(t, err, members.ErrTokenUsed)
}

func TestMemberLogin_RequiresCompletedRegistration(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	intentionService := intentions.NewService(pool, testBaseURL, &captureNotifier{})
	memberService := members.NewService(pool)

	intention := submitIntention(t, intentionService, "jane@x.com")
	result, err := intentionService.Decide(context.Background(), intention.ID, intentions.StatusAprovado)
	require.NoError(t, err)

	_, err = memberService.GetByEmail(context.Background(), "jane@x.com")
	require.ErrorIs(t, err, members.ErrRegistrationIncomplete)

	_, err = memberService.GetByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, members.ErrMemberNotFound)

	_, err = memberService.Complete(context.Background(), members.CompleteRequest{Token: result.Membro.Token})
	require.NoError(t, err)

	profile, err := memberService.GetByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)
	require.True(t, profile.TokenUsado)

	active, err := memberService.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestReferralCreate_RequiresActivatedMembers(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	referralService := referrals.NewService(pool)
	intentionService := intentions.NewService(pool, testBaseURL, &captureNotifier{})

	referrer := activateMember(t, pool, "referrer@x.com")

	// Provisioned but not yet registered: not an eligible referee.
	intention := submitIntention(t, intentionService, "provisioned@x.com")
	result, err := intentionService.Decide(context.Background(), intention.ID, intentions.StatusAprovado)
	require.NoError(t, err)

	_, err = referralService.Create(context.Background(), referrer.ID, result.Membro.ID, referrals.CreateRequest{
		EmpresaContato: "Padaria do João",
		Descricao:      "Cliente interessado em consultoria financeira completa",
	})
	require.ErrorIs(t, err, referrals.ErrMemberNotFound)

	referee := activateMember(t, pool, "referee@x.com")

	referral, err := referralService.Create(context.Background(), referrer.ID, referee.ID, referrals.CreateRequest{
		EmpresaContato: "Padaria do João",
		Descricao:      "Cliente interessado em consultoria financeira completa",
	})
	require.NoError(t, err)
	require.Equal(t, referrals.StatusNova, referral.Status)
	require.Equal(t, referrer.ID, referral.Indicador.ID)
	require.Equal(t, referee.ID, referral.Indicado.ID)
	require.NotEmpty(t, referral.Indicador.Nome)
}

func TestReferralList_ByRole(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	referralService := referrals.NewService(pool)

	alice := activateMember(t, pool, "alice@x.com")
	bob := activateMember(t, pool, "bob@x.com")

	_, err := referralService.Create(context.Background(), alice.ID, bob.ID, referrals.CreateRequest{
		EmpresaContato: "Padaria do João",
		Descricao:      "Cliente interessado em consultoria financeira completa",
	})
	require.NoError(t, err)

	made, err := referralService.List(context.Background(), alice.ID, referrals.RoleMade, "")
	require.NoError(t, err)
	require.Len(t, made, 1)

	received, err := referralService.List(context.Background(), alice.ID, referrals.RoleReceived, "")
	require.NoError(t, err)
	require.Empty(t, received)

	received, err = referralService.List(context.Background(), bob.ID, referrals.RoleReceived, "")
	require.NoError(t, err)
	require.Len(t, received, 1)

	_, err = referralService.List(context.Background(), alice.ID, "everything", "")
	require.ErrorIs(t, err, referrals.ErrInvalidRole)
}

func TestReferralSetStatus_PermissiveTransitions(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	referralService := referrals.NewService(pool)

	alice := activateMember(t, pool, "alice@x.com")
	bob := activateMember(t, pool, "bob@x.com")

	referral, err := referralService.Create(context.Background(), alice.ID, bob.ID, referrals.CreateRequest{
		EmpresaContato: "Padaria do João",
		Descricao:      "Cliente interessado em consultoria financeira completa",
	})
	require.NoError(t, err)

	for _, status := range []referrals.Status{
		referrals.StatusEmContato,
		referrals.StatusFechada,
		referrals.StatusEmContato, // terminal states are not locked
		referrals.StatusRecusada,
	} {
		update, err := referralService.SetStatus(context.Background(), referral.ID, status)
		require.NoError(t, err)
		require.Equal(t, status, update.Status)
	}
}

func TestReminderJob_ResendsStaleInvites(t *testing.T) {
	pool, cleanup := newTestDB(t)
	t.Cleanup(cleanup)

	intentionService := intentions.NewService(pool, testBaseURL, &captureNotifier{})

	// Stale provisioned member.
	stale := submitIntention(t, intentionService, "stale@x.com")
	staleResult, err := intentionService.Decide(context.Background(), stale.ID, intentions.StatusAprovado)
	require.NoError(t, err)

	_, err = pool.Exec(context.Background(),
		`UPDATE membros SET created_at = $2 WHERE id = $1`,
		staleResult.Membro.ID, time.Now().Add(-5*24*time.Hour))
	require.NoError(t, err)

	// Fresh provisioned member and a completed one: neither gets a reminder.
	fresh := submitIntention(t, intentionService, "fresh@x.com")
	_, err = intentionService.Decide(context.Background(), fresh.ID, intentions.StatusAprovado)
	require.NoError(t, err)
	activateMember(t, pool, "done@x.com")

	notifier := &captureNotifier{}
	sent, err := reminder.RunReminderJob(context.Background(), pool, notifier, testBaseURL, 3)
	require.NoError(t, err)
	require.Equal(t, 1, sent)

	invitations := notifier.sent()
	require.Len(t, invitations, 1)
	require.Equal(t, "stale@x.com", invitations[0].Email)
	require.True(t, invitations[0].Reminder)
	require.Equal(t, testBaseURL+"/cadastro/"+staleResult.Membro.Token, invitations[0].ConviteLink)
}
