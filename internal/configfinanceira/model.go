package configfinanceira

import (
	"strconv"

	"gorm.io/gorm"
)

// ConfigFinanceira guarda as regras de cobrança de uma escola (tenant).
// Uma linha por escola, substituída por inteiro a cada salvamento.
type ConfigFinanceira struct {
	gorm.Model

	EscolaID uint `gorm:"uniqueIndex;not null" json:"escolaId"`

	DiaVencimento int `gorm:"not null;default:10" json:"diaVencimento"`
	DiasCarencia  int `gorm:"not null;default:5" json:"diasCarencia"`

	MultaPercentual       float64 `gorm:"not null;default:0" json:"multaPercentual"`
	MultaFixa             float64 `gorm:"not null;default:0" json:"multaFixa"`
	JurosMensalPercentual float64 `gorm:"not null;default:0" json:"jurosMensalPercentual"`

	// Descontos lidos no momento da criação da cobrança; nunca recalculados.
	DescontoIrmaosPercentual       float64 `gorm:"not null;default:0" json:"descontoIrmaosPercentual"`
	DescontoPontualidadePercentual float64 `gorm:"not null;default:0" json:"descontoPontualidadePercentual"`

	// Mutuamente exclusivos
	PixManual     bool `gorm:"not null;default:true" json:"pixManual"`
	PixAutomatico bool `gorm:"not null;default:false" json:"pixAutomatico"`

	// Mensalidade padrão por turma, chaveada pelo id da turma.
	MensalidadesPorTurma map[string]float64 `gorm:"type:jsonb;serializer:json" json:"mensalidadesPorTurma"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ConfigFinanceira{})
}

// Padrao devolve as regras usadas quando a escola nunca salvou config:
// vencimento dia 10, carência de 5 dias, multa 2%, juros 1% ao mês.
func Padrao(escolaID uint) *ConfigFinanceira {
	return &ConfigFinanceira{
		EscolaID:              escolaID,
		DiaVencimento:         10,
		DiasCarencia:          5,
		MultaPercentual:       2,
		JurosMensalPercentual: 1,
		PixManual:             true,
	}
}

// MensalidadePadraoTurma devolve a mensalidade configurada para a turma,
// se houver.
func (c *ConfigFinanceira) MensalidadePadraoTurma(turmaID uint) (float64, bool) {
	if c.MensalidadesPorTurma == nil {
		return 0, false
	}
	v, ok := c.MensalidadesPorTurma[strconv.FormatUint(uint64(turmaID), 10)]
	return v, ok
}
