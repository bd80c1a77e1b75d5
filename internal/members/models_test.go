package members

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompleteRequest_Validate_TokenShape(t *testing.T) {
	req := CompleteRequest{Token: strings.Repeat("ab12", 8)}
	require.Empty(t, req.Validate())

	for _, tok := range []string{
		"",
		"abc",
		strings.ToUpper(strings.Repeat("ab12", 8)),
		strings.Repeat("a", 31),
		strings.Repeat("z", 32),
	} {
		req := CompleteRequest{Token: tok}
		errs := req.Validate()
		require.Len(t, errs, 1, "token %q", tok)
		require.Equal(t, "token", errs[0].Field)
	}
}

func TestCompleteRequest_Validate_OptionalFields(t *testing.T) {
	telefone := "11999999999"
	cargo := "Diretora Comercial"
	req := CompleteRequest{Token: strings.Repeat("ab12", 8), Telefone: &telefone, Cargo: &cargo}
	require.Empty(t, req.Validate())

	shortPhone := "123"
	req = CompleteRequest{Token: strings.Repeat("ab12", 8), Telefone: &shortPhone}
	errs := req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "telefone", errs[0].Field)

	shortCargo := "Dr"
	req = CompleteRequest{Token: strings.Repeat("ab12", 8), Cargo: &shortCargo}
	errs = req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "cargo", errs[0].Field)
}

func TestTrimOptional(t *testing.T) {
	require.Nil(t, trimOptional(nil))

	blank := "   "
	require.Nil(t, trimOptional(&blank))

	padded := "  11999999999  "
	trimmed := trimOptional(&padded)
	require.NotNil(t, trimmed)
	require.Equal(t, "11999999999", *trimmed)
}
