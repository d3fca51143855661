package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscreverMapeiaCategorias(t *testing.T) {
	casos := []struct {
		err    error
		status int
	}{
		{NewValidationError("valor deve ser positivo"), http.StatusBadRequest},
		{NewPreconditionError("cobrança já está paga"), http.StatusPreconditionFailed},
		{NewNotFoundError("cobrança não encontrada"), http.StatusNotFound},
		{NewConflictError("registro alterado por outra requisição"), http.StatusConflict},
		{fmt.Errorf("falha de rede"), http.StatusInternalServerError},
	}

	for _, c := range casos {
		rec := httptest.NewRecorder()
		Escrever(rec, c.err)
		assert.Equal(t, c.status, rec.Code)
	}
}

func TestEscreverPreservaDetalhes(t *testing.T) {
	rec := httptest.NewRecorder()
	Escrever(rec, NewPreconditionErrorDetalhes(
		"3 aluno(s) sem matrícula ativa",
		map[string]interface{}{"alunosSemMatricula": 3},
	))

	require.Equal(t, http.StatusPreconditionFailed, rec.Code)

	var corpo struct {
		Erro     string                 `json:"erro"`
		Detalhes map[string]interface{} `json:"detalhes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&corpo))
	assert.Equal(t, "3 aluno(s) sem matrícula ativa", corpo.Erro)
	assert.EqualValues(t, 3, corpo.Detalhes["alunosSemMatricula"])
}

func TestEscreverEmbrulhado(t *testing.T) {
	// errors.As deve enxergar a categoria mesmo com fmt.Errorf %w por cima.
	rec := httptest.NewRecorder()
	Escrever(rec, fmt.Errorf("salvar lote: %w", NewPreconditionError("sem matrícula")))
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}
