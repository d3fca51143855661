// internal/fechamento/dto.go
package fechamento

// LinhaFechamento é uma competência (mês-calendário do vencimento) com os
// totais do fechamento mensal.
type LinhaFechamento struct {
	Competencia string  `json:"competencia"` // "AAAA-MM"
	Previsto    float64 `json:"previsto"`
	Recebido    float64 `json:"recebido"`
	EmAberto    float64 `json:"emAberto"`
}
