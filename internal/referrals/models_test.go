package referrals

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		IndicadorID:    uuid.NewString(),
		IndicadoID:     uuid.NewString(),
		EmpresaContato: "Padaria do João",
		Descricao:      "Cliente interessado em consultoria financeira completa",
	}
}

func TestCreateRequest_Validate_OK(t *testing.T) {
	req := validCreateRequest()
	indicadorID, indicadoID, errs := req.Validate()
	require.Empty(t, errs)
	require.NotEqual(t, uuid.Nil, indicadorID)
	require.NotEqual(t, uuid.Nil, indicadoID)
}

func TestCreateRequest_Validate_SelfReferral(t *testing.T) {
	req := validCreateRequest()
	req.IndicadoID = req.IndicadorID

	_, _, errs := req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "indicadoId", errs[0].Field)
}

func TestCreateRequest_Validate_BadIDs(t *testing.T) {
	req := validCreateRequest()
	req.IndicadorID = "not-a-uuid"

	_, _, errs := req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "indicadorId", errs[0].Field)
}

func TestCreateRequest_Validate_FieldRules(t *testing.T) {
	req := validCreateRequest()
	req.EmpresaContato = "X"
	_, _, errs := req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "empresaContato", errs[0].Field)

	req = validCreateRequest()
	req.Descricao = "curta"
	_, _, errs = req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "descricao", errs[0].Field)

	req = validCreateRequest()
	req.Descricao = strings.Repeat("a", 501)
	_, _, errs = req.Validate()
	require.Len(t, errs, 1)
}

func TestSetStatusRequest_Validate(t *testing.T) {
	for _, status := range []string{"NOVA", "EM_CONTATO", "FECHADA", "RECUSADA"} {
		req := SetStatusRequest{Status: status}
		require.Empty(t, req.Validate(), status)
	}

	req := SetStatusRequest{Status: "CLOSED"}
	errs := req.Validate()
	require.Len(t, errs, 1)
	require.Equal(t, "status", errs[0].Field)
}

func TestStatus_IsValid(t *testing.T) {
	require.True(t, StatusNova.IsValid())
	require.True(t, StatusEmContato.IsValid())
	require.True(t, StatusFechada.IsValid())
	require.True(t, StatusRecusada.IsValid())
	require.False(t, Status("").IsValid())
	require.False(t, Status("PENDENTE").IsValid())
}
