// internal/configfinanceira/repository.go
package configfinanceira

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula o acesso a dados de ConfigFinanceira.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert cria a config no primeiro salvamento e substitui por inteiro
// nos seguintes (sem histórico).
func (r *Repository) Upsert(cfg *ConfigFinanceira) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "escola_id"}},
		UpdateAll: true,
	}).Create(cfg).Error
}

// BuscarPorEscola devolve a config salva da escola, ou a config padrão
// quando a escola nunca salvou. O segundo retorno indica se veio do banco.
func (r *Repository) BuscarPorEscola(escolaID uint) (*ConfigFinanceira, bool, error) {
	var cfg ConfigFinanceira
	err := r.DB.Where("escola_id = ?", escolaID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Padrao(escolaID), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &cfg, true, nil
}
