package cobranca

import (
	"testing"
	"time"

	"github.com/EscolaViva/api-gestao/internal/configfinanceira"
	"github.com/stretchr/testify/assert"
)

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 0, 0, 0, 0, time.UTC)
}

func TestStatusEfetivo(t *testing.T) {
	hoje := dia(2024, time.March, 15)

	casos := []struct {
		nome       string
		status     string
		vencimento time.Time
		esperado   string
	}{
		{"a vencer no futuro", StatusAVencer, dia(2024, time.April, 10), StatusAVencer},
		{"a vencer hoje não atrasa", StatusAVencer, dia(2024, time.March, 15), StatusAVencer},
		{"a vencer no passado atrasa", StatusAVencer, dia(2024, time.March, 14), StatusAtrasado},
		{"paga nunca atrasa", StatusPago, dia(2024, time.January, 10), StatusPago},
		{"cancelada nunca atrasa", StatusCancelado, dia(2024, time.January, 10), StatusCancelado},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			cob := Cobranca{Status: c.status, DataVencimento: c.vencimento}
			assert.Equal(t, c.esperado, StatusEfetivo(&cob, hoje))
		})
	}
}

func TestStatusEfetivoIgnoraHorario(t *testing.T) {
	// Vencida às 23h de ontem, lida às 00h05 de hoje: atrasada.
	venc := time.Date(2024, time.March, 14, 23, 0, 0, 0, time.UTC)
	agora := time.Date(2024, time.March, 15, 0, 5, 0, 0, time.UTC)
	cob := Cobranca{Status: StatusAVencer, DataVencimento: venc}
	assert.Equal(t, StatusAtrasado, StatusEfetivo(&cob, agora))
}

func TestMesesAtraso(t *testing.T) {
	venc := dia(2024, time.January, 10)

	assert.Equal(t, 0.0, MesesAtraso(venc, dia(2024, time.January, 10)))
	assert.Equal(t, 0.0, MesesAtraso(venc, dia(2024, time.January, 5)))
	// Exatamente um mês-calendário, mesmo com 31 dias corridos.
	assert.Equal(t, 1.0, MesesAtraso(venc, dia(2024, time.February, 10)))
	assert.Equal(t, 2.0, MesesAtraso(venc, dia(2024, time.March, 10)))
	// 15 dias além do mês cheio entram como trintavos.
	assert.InDelta(t, 1.5, MesesAtraso(venc, dia(2024, time.February, 25)), 0.001)
	// Atraso menor que um mês é só fração.
	assert.InDelta(t, 0.5, MesesAtraso(venc, dia(2024, time.January, 25)), 0.001)
}

// Cenário de referência: R$100 vencida em 10/01/2024, paga em 10/02/2024
// (1 mês de atraso), multa 2%, juros 1% a.m. => 100 + 2 + 1 = 103,00.
func TestCalcularTotalDevidoUmMesDeAtraso(t *testing.T) {
	cfg := &configfinanceira.ConfigFinanceira{
		DiaVencimento:         10,
		DiasCarencia:          5,
		MultaPercentual:       2,
		JurosMensalPercentual: 1,
	}
	cob := Cobranca{Valor: 100, DataVencimento: dia(2024, time.January, 10)}

	total := CalcularTotalDevido(&cob, cfg, dia(2024, time.February, 10))
	assert.Equal(t, 103.00, total)
}

func TestCalcularTotalDevidoDentroDaCarencia(t *testing.T) {
	cfg := configfinanceira.Padrao(1) // carência 5 dias

	cob := Cobranca{Valor: 500, DataVencimento: dia(2024, time.March, 10)}

	// Até o 5º dia de atraso não há encargo.
	assert.Equal(t, 500.00, CalcularTotalDevido(&cob, cfg, dia(2024, time.March, 10)))
	assert.Equal(t, 500.00, CalcularTotalDevido(&cob, cfg, dia(2024, time.March, 15)))
	// No 6º dia os encargos contam desde o vencimento.
	assert.Greater(t, CalcularTotalDevido(&cob, cfg, dia(2024, time.March, 16)), 500.00)
}

func TestCalcularTotalDevidoMultaFixa(t *testing.T) {
	cfg := &configfinanceira.ConfigFinanceira{
		DiasCarencia:          0,
		MultaPercentual:       2,
		MultaFixa:             10,
		JurosMensalPercentual: 1,
	}
	cob := Cobranca{Valor: 100, DataVencimento: dia(2024, time.January, 10)}

	// 100 + 10 fixa + 2 multa + 1 juros (1 mês)
	assert.Equal(t, 113.00, CalcularTotalDevido(&cob, cfg, dia(2024, time.February, 10)))
}

func TestCalcularTotalDevidoArredondaCentavos(t *testing.T) {
	cfg := &configfinanceira.ConfigFinanceira{
		DiasCarencia:          0,
		JurosMensalPercentual: 1,
	}
	cob := Cobranca{Valor: 333.33, DataVencimento: dia(2024, time.January, 10)}

	// 333.33 + 333.33×1%×(10/30) = 334.4411; arredonda para 334.44
	total := CalcularTotalDevido(&cob, cfg, dia(2024, time.January, 20))
	assert.Equal(t, 334.44, total)
}

func TestDiasAtraso(t *testing.T) {
	venc := dia(2024, time.January, 10)
	assert.Equal(t, 0, DiasAtraso(venc, dia(2024, time.January, 5)))
	assert.Equal(t, 0, DiasAtraso(venc, dia(2024, time.January, 10)))
	assert.Equal(t, 1, DiasAtraso(venc, dia(2024, time.January, 11)))
	assert.Equal(t, 31, DiasAtraso(venc, dia(2024, time.February, 10)))
}
