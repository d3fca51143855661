package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewarePropagaEscola(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "segredo-de-teste")

	token, err := GenerateAccessToken(1, 42, "secretaria")
	require.NoError(t, err)

	var escolaVista uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		escolaVista = EscolaDoContexto(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/cobrancas", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	MiddlewareAutenticacao(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), escolaVista)
}

func TestMiddlewareSemToken(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "segredo-de-teste")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("não deveria chegar no handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/cobrancas", nil)
	rec := httptest.NewRecorder()

	MiddlewareAutenticacao(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareTokenAdulterado(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "segredo-de-teste")

	token, err := GenerateAccessToken(1, 42, "secretaria")
	require.NoError(t, err)

	t.Setenv("AUTH_JWT_SECRET", "outro-segredo")

	req := httptest.NewRequest(http.MethodGet, "/cobrancas", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("não deveria chegar no handler")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
