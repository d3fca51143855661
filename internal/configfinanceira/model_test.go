package configfinanceira

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadrao(t *testing.T) {
	cfg := Padrao(7)

	assert.Equal(t, uint(7), cfg.EscolaID)
	assert.Equal(t, 10, cfg.DiaVencimento)
	assert.Equal(t, 5, cfg.DiasCarencia)
	assert.Equal(t, 2.0, cfg.MultaPercentual)
	assert.Equal(t, 1.0, cfg.JurosMensalPercentual)
	assert.Equal(t, 0.0, cfg.MultaFixa)
	assert.True(t, cfg.PixManual)
	assert.False(t, cfg.PixAutomatico)
}

func TestMensalidadePadraoTurma(t *testing.T) {
	cfg := ConfigFinanceira{
		MensalidadesPorTurma: map[string]float64{"12": 850.00},
	}

	v, ok := cfg.MensalidadePadraoTurma(12)
	assert.True(t, ok)
	assert.Equal(t, 850.00, v)

	_, ok = cfg.MensalidadePadraoTurma(99)
	assert.False(t, ok)

	// mapa nulo não explode
	vazia := ConfigFinanceira{}
	_, ok = vazia.MensalidadePadraoTurma(12)
	assert.False(t, ok)
}
