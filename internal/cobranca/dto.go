// internal/cobranca/dto.go
package cobranca

import "time"

type CriarCobrancaDTO struct {
	AlunoID   uint   `json:"alunoId" validate:"required"`
	TurmaID   uint   `json:"turmaId"`
	Descricao string `json:"descricao" validate:"required"`
	// Zero = usar o valor padrão (config da turma > matrícula ativa).
	Valor          float64 `json:"valor" validate:"min=0"`
	DataVencimento string  `json:"dataVencimento" validate:"required"`
}

type RegistrarPagamentoDTO struct {
	DataPagamento string  `json:"dataPagamento"`
	ValorPago     float64 `json:"valorPago" validate:"min=0"`
	Metodo        string  `json:"metodo" validate:"omitempty,oneof=pix boleto dinheiro cartao"`
	// Quando vazio, uma referência é gerada na baixa.
	ReferenciaTransacao string `json:"referenciaTransacao"`
}

// CobrancaDTO é a visão de leitura: inclui o status efetivo e o total
// sugerido com multa e juros, nunca persistidos.
type CobrancaDTO struct {
	ID                  uint       `json:"id"`
	AlunoID             uint       `json:"alunoId"`
	Descricao           string     `json:"descricao"`
	Valor               float64    `json:"valor"`
	DataVencimento      time.Time  `json:"dataVencimento"`
	Status              string     `json:"status"`
	StatusEfetivo       string     `json:"statusEfetivo"`
	TotalSugerido       float64    `json:"totalSugerido"`
	DataPagamento       *time.Time `json:"dataPagamento,omitempty"`
	ValorPago           float64    `json:"valorPago,omitempty"`
	MetodoPagamento     string     `json:"metodoPagamento,omitempty"`
	ReferenciaTransacao string     `json:"referenciaTransacao,omitempty"`

	DescontoIrmaosPercentual       float64 `json:"descontoIrmaosPercentual"`
	DescontoPontualidadePercentual float64 `json:"descontoPontualidadePercentual"`
}
