package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStringLength_Bounds(t *testing.T) {
	var errs Errors
	StringLength(&errs, "nome", "Nome", "Jo", 3, 100)
	require.Len(t, errs, 1)
	require.Equal(t, "nome", errs[0].Field)

	errs = nil
	StringLength(&errs, "nome", "Nome", "Joana", 3, 100)
	require.Empty(t, errs)

	errs = nil
	StringLength(&errs, "nome", "Nome", strings.Repeat("a", 101), 3, 100)
	require.Len(t, errs, 1)
}

func TestStringLength_CountsRunesNotBytes(t *testing.T) {
	// 300 accented characters are 600 bytes but well under the 500 max.
	var errs Errors
	StringLength(&errs, "motivacao", "Motivação", strings.Repeat("ã", 300), 20, 500)
	require.Empty(t, errs)

	// 19 accented characters are 38 bytes but still below the 20 min.
	errs = nil
	StringLength(&errs, "motivacao", "Motivação", strings.Repeat("ã", 19), 20, 500)
	require.Len(t, errs, 1)
	require.Equal(t, "Motivação deve ter no mínimo 20 caracteres", errs[0].Message)

	errs = nil
	StringLength(&errs, "nome", "Nome", "João", 3, 100)
	require.Empty(t, errs)

	errs = nil
	cargo := strings.Repeat("ç", 100)
	OptionalStringLength(&errs, "cargo", "Cargo", &cargo, 3, 100)
	require.Empty(t, errs)
}

func TestStringLength_TrimsBeforeMeasuring(t *testing.T) {
	var errs Errors
	StringLength(&errs, "empresa", "Empresa", "  ab  ", 2, 100)
	require.Empty(t, errs)
}

func TestOptionalStringLength_EmptyPasses(t *testing.T) {
	var errs Errors
	OptionalStringLength(&errs, "telefone", "Telefone", nil, 10, 20)
	require.Empty(t, errs)

	empty := ""
	OptionalStringLength(&errs, "telefone", "Telefone", &empty, 10, 20)
	require.Empty(t, errs)

	short := "123"
	OptionalStringLength(&errs, "telefone", "Telefone", &short, 10, 20)
	require.Len(t, errs, 1)
}

func TestEmail(t *testing.T) {
	var errs Errors
	Email(&errs, "email", "jane@x.com", 100)
	require.Empty(t, errs)

	errs = nil
	Email(&errs, "email", "not-an-email", 100)
	require.Len(t, errs, 1)

	errs = nil
	Email(&errs, "email", "", 100)
	require.Len(t, errs, 1)

	errs = nil
	Email(&errs, "email", strings.Repeat("a", 95)+"@x.com", 100)
	require.Len(t, errs, 1)
}

func TestEmail_RejectsNonPlainAddresses(t *testing.T) {
	for _, value := range []string{
		"Jane <jane@x.com>",
		"\"Jane\" <jane@x.com>",
		"jane@x",
		"jane@x.com, other@x.com",
	} {
		var errs Errors
		Email(&errs, "email", value, 100)
		require.Len(t, errs, 1, "expected %q to be rejected", value)
		require.Equal(t, "Email inválido", errs[0].Message)
	}
}

func TestUUIDField(t *testing.T) {
	var errs Errors
	id := uuid.New()

	parsed := UUIDField(&errs, "indicadorId", "ID do indicador", id.String())
	require.Empty(t, errs)
	require.Equal(t, id, parsed)

	parsed = UUIDField(&errs, "indicadorId", "ID do indicador", "nope")
	require.Len(t, errs, 1)
	require.Equal(t, uuid.Nil, parsed)
}

func TestOneOf(t *testing.T) {
	var errs Errors
	OneOf(&errs, "status", "APROVADO", "PENDENTE", "APROVADO", "RECUSADO")
	require.Empty(t, errs)

	OneOf(&errs, "status", "APPROVED", "PENDENTE", "APROVADO", "RECUSADO")
	require.Len(t, errs, 1)
}

func TestErrors_Details(t *testing.T) {
	var errs Errors
	errs.Add("nome", "Nome deve ter no mínimo 3 caracteres")
	errs.Add("email", "Email inválido")
	errs.Add("email", "Email deve ter no máximo 100 caracteres")

	details := errs.Details()
	require.Len(t, details, 2)
	require.Len(t, details["email"], 2)

	var empty Errors
	require.Nil(t, empty.Details())
}
