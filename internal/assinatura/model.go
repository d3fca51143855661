package assinatura

import (
	"gorm.io/gorm"
)

// Status de assinatura.
const (
	AssinaturaAtiva     = "ativa"
	AssinaturaArquivada = "arquivada"
)

// Status de solicitação de upgrade. Pendente é o único estado não
// terminal: aprovado/recusado não reabrem; cria-se outra solicitação.
const (
	SolicitacaoPendente = "pendente"
	SolicitacaoAprovada = "aprovado"
	SolicitacaoRecusada = "recusado"
)

// Assinatura é o plano contratado da escola: limite de alunos e preço.
// No máximo uma ativa por escola; a aprovação de um upgrade arquiva a
// atual e cria a nova na mesma transação.
type Assinatura struct {
	gorm.Model

	EscolaID     uint    `gorm:"not null;index" json:"escolaId"`
	Status       string  `gorm:"size:20;not null;default:'ativa';index" json:"status"`
	LimiteAlunos int     `gorm:"not null" json:"limiteAlunos"`
	ValorTotal   float64 `gorm:"not null" json:"valorTotal"`
}

// SolicitacaoUpgrade registra o pedido de aumento de capacidade, com o
// retrato do plano vigente no momento do pedido.
type SolicitacaoUpgrade struct {
	gorm.Model

	EscolaID uint   `gorm:"not null;index" json:"escolaId"`
	Status   string `gorm:"size:20;not null;default:'pendente';index" json:"status"`

	LimiteAtual      int     `gorm:"not null" json:"limiteAtual"`
	LimiteSolicitado int     `gorm:"not null" json:"limiteSolicitado"`
	ValorAtual       float64 `gorm:"not null" json:"valorAtual"`
	ValorProposto    float64 `gorm:"not null" json:"valorProposto"`
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Assinatura{}, &SolicitacaoUpgrade{})
}
