package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEVerificarSenha(t *testing.T) {
	hash, err := HashSenha("s3nha-forte")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha-forte", hash)

	assert.True(t, VerificarSenha(hash, "s3nha-forte"))
	assert.False(t, VerificarSenha(hash, "outra"))
}

func TestGerarSenhaTemporaria(t *testing.T) {
	a, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	b, err := GerarSenhaTemporaria()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}

func TestParseData(t *testing.T) {
	d, err := ParseData("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	// RFC3339 é aceito e truncado para o dia.
	d, err = ParseData("2024-03-15T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseData("15/03/2024")
	assert.Error(t, err)
}
