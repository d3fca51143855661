package matricula

import (
	"gorm.io/gorm"
)

// Status possíveis de uma matrícula.
const (
	StatusAtiva     = "ativa"
	StatusConcluida = "concluida"
	StatusCancelada = "cancelada"
)

// Tipos de matrícula.
const (
	TipoNova        = "nova"
	TipoRematricula = "rematricula"
)

// Matricula é a fonte de verdade de "este aluno está matriculado".
// Criada na matrícula, alterada pela secretaria; nunca expira sozinha.
// Frequência e inadimplência só podem ser apuradas para alunos com
// matrícula ativa.
type Matricula struct {
	gorm.Model

	EscolaID uint `gorm:"not null;index:idx_matricula_aluno_escola" json:"escolaId"`
	AlunoID  uint `gorm:"not null;index:idx_matricula_aluno_escola" json:"alunoId"`
	TurmaID  uint `gorm:"not null;index" json:"turmaId"`

	Tipo      string `gorm:"size:20;not null;default:'nova'" json:"tipo"`
	AnoLetivo int    `gorm:"not null" json:"anoLetivo"`
	Serie     string `gorm:"size:50" json:"serie"`
	Turno     string `gorm:"size:20" json:"turno"`

	Status string `gorm:"size:20;not null;default:'ativa';index" json:"status"`

	// Valor de mensalidade acordado no contrato desta matrícula.
	ValorContratado float64 `gorm:"not null;default:0" json:"valorContratado"`
}

// StatusValido informa se o status é um dos suportados.
func StatusValido(s string) bool {
	switch s {
	case StatusAtiva, StatusConcluida, StatusCancelada:
		return true
	default:
		return false
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Matricula{})
}
