package frequencia

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status possíveis de um registro de frequência.
const (
	StatusPresente    = "presente"
	StatusFalta       = "falta"
	StatusJustificada = "justificada"
)

// RegistroFrequencia é a presença de um aluno em uma turma num dia.
// O conjunto de uma (escola, turma, data) é sempre substituído por
// inteiro no salvamento; nunca editado linha a linha.
type RegistroFrequencia struct {
	gorm.Model

	EscolaID uint           `gorm:"not null;index:idx_frequencia_lote" json:"escolaId"`
	TurmaID  uint           `gorm:"not null;index:idx_frequencia_lote" json:"turmaId"`
	Data     datatypes.Date `gorm:"not null;index:idx_frequencia_lote" json:"data"`

	AlunoID uint   `gorm:"not null;index" json:"alunoId"`
	Status  string `gorm:"size:20;not null" json:"status"`

	// Opcional mesmo para "justificada"; a convenção de exigir texto é
	// da tela, não do gravador.
	Justificativa string `gorm:"size:500" json:"justificativa"`
}

// StatusValido informa se o status é um dos suportados.
func StatusValido(s string) bool {
	switch s {
	case StatusPresente, StatusFalta, StatusJustificada:
		return true
	default:
		return false
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RegistroFrequencia{})
}
