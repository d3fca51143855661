// internal/cobranca/fees.go
//
// Funções puras de status e encargos. A config entra como argumento
// explícito; nada aqui lê estado global nem toca o banco.
package cobranca

import (
	"math"
	"time"

	"github.com/EscolaViva/api-gestao/internal/configfinanceira"
)

// TruncarDia zera o horário; comparações de vencimento são por dia.
func TruncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StatusEfetivo deriva o status de leitura:
// a_vencer com vencimento anterior a hoje vira atrasado; o resto fica
// como está. Nunca gravado, nunca cacheado, sem job de expiração.
func StatusEfetivo(c *Cobranca, hoje time.Time) string {
	if c.Status == StatusAVencer && TruncarDia(c.DataVencimento).Before(TruncarDia(hoje)) {
		return StatusAtrasado
	}
	return c.Status
}

// DiasAtraso conta dias corridos entre o vencimento e a referência.
// Zero quando não venceu.
func DiasAtraso(vencimento, ref time.Time) int {
	d := int(TruncarDia(ref).Sub(TruncarDia(vencimento)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// MesesAtraso devolve meses de atraso com fração: meses-calendário
// inteiros (passo de AddDate) mais o resto em trintavos. Vencimento
// 10/01 pago em 10/02 conta exatamente 1.0.
func MesesAtraso(vencimento, ref time.Time) float64 {
	venc := TruncarDia(vencimento)
	fim := TruncarDia(ref)
	if !venc.Before(fim) {
		return 0
	}

	meses := 0
	for !venc.AddDate(0, meses+1, 0).After(fim) {
		meses++
	}
	resto := int(fim.Sub(venc.AddDate(0, meses, 0)).Hours() / 24)
	return float64(meses) + float64(resto)/30.0
}

// CalcularTotalDevido sugere o total com encargos na data de referência:
//
//	total = valor
//	      + multa fixa                      [se em atraso]
//	      + valor × multa% / 100            [se em atraso]
//	      + valor × juros% / 100 × meses de atraso
//
// Encargos só se aplicam depois da carência; vencida a carência, multa e
// juros contam a partir do próprio vencimento. O valor armazenado da
// cobrança nunca é alterado por aqui: a aplicação é decisão do operador.
func CalcularTotalDevido(c *Cobranca, cfg *configfinanceira.ConfigFinanceira, ref time.Time) float64 {
	dias := DiasAtraso(c.DataVencimento, ref)
	if dias <= cfg.DiasCarencia {
		return ArredondarCentavos(c.Valor)
	}

	meses := MesesAtraso(c.DataVencimento, ref)
	total := c.Valor +
		cfg.MultaFixa +
		c.Valor*cfg.MultaPercentual/100 +
		c.Valor*cfg.JurosMensalPercentual/100*meses
	return ArredondarCentavos(total)
}

// ArredondarCentavos arredonda para 2 casas decimais.
func ArredondarCentavos(v float64) float64 {
	return math.Round(v*100) / 100
}
