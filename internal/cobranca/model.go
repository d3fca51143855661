package cobranca

import (
	"time"

	"gorm.io/gorm"
)

// Status armazenados de uma cobrança. "atrasado" nunca é gravado:
// é derivado na leitura a partir de (status, vencimento, hoje).
const (
	StatusAVencer   = "a_vencer"
	StatusPago      = "pago"
	StatusAtrasado  = "atrasado"
	StatusCancelado = "cancelado"
)

// Cobranca representa um item de cobrança devido pela família de um aluno.
type Cobranca struct {
	gorm.Model

	EscolaID uint `gorm:"not null;index" json:"escolaId"`
	AlunoID  uint `gorm:"not null;index" json:"alunoId"`

	Descricao string  `gorm:"size:255;not null" json:"descricao"`
	Valor     float64 `gorm:"not null" json:"valor"`

	// Snapshot dos descontos da config no momento da criação.
	// Nunca recalculados depois.
	DescontoIrmaosPercentual       float64 `gorm:"not null;default:0" json:"descontoIrmaosPercentual"`
	DescontoPontualidadePercentual float64 `gorm:"not null;default:0" json:"descontoPontualidadePercentual"`

	DataVencimento time.Time `gorm:"not null;index" json:"dataVencimento"`
	Status         string    `gorm:"size:20;not null;default:'a_vencer';index" json:"status"`

	DataPagamento       *time.Time `json:"dataPagamento"`
	ValorPago           float64    `gorm:"not null;default:0" json:"valorPago"`
	MetodoPagamento     string     `gorm:"size:30" json:"metodoPagamento"`
	ReferenciaTransacao string     `gorm:"size:100" json:"referenciaTransacao"`
}

// StatusFiltroValido aceita também "atrasado", que só existe derivado.
func StatusFiltroValido(s string) bool {
	switch s {
	case StatusAVencer, StatusPago, StatusAtrasado, StatusCancelado:
		return true
	default:
		return false
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cobranca{})
}
