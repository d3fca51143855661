// internal/cobranca/repository.go
package cobranca

import (
	"time"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Cobranca.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

// Criar insere uma nova cobrança.
func (r *Repository) Criar(c *Cobranca) error {
	return r.DB.Create(c).Error
}

// FindByID busca uma cobrança pelo ID dentro da escola.
func (r *Repository) FindByID(id, escolaID uint) (*Cobranca, error) {
	var c Cobranca
	err := r.DB.Where("id = ? AND escola_id = ?", id, escolaID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarPorEscola lista as cobranças da escola ordenadas por vencimento.
// O filtro de status efetivo (que inclui "atrasado", derivado) é aplicado
// pelo chamador após a derivação.
func (r *Repository) ListarPorEscola(escolaID uint, alunoID uint) ([]Cobranca, error) {
	q := r.DB.Where("escola_id = ?", escolaID)
	if alunoID != 0 {
		q = q.Where("aluno_id = ?", alunoID)
	}
	var list []Cobranca
	err := q.Order("data_vencimento ASC").Find(&list).Error
	return list, err
}

// Pagamento agrupa os dados da baixa manual (PIX/boleto confirmados
// pelo operador).
type Pagamento struct {
	Data       time.Time
	Valor      float64
	Metodo     string
	Referencia string
}

// MarcarPaga dá baixa na cobrança com check-and-set dentro de uma única
// transação: o UPDATE só acerta se o status ainda não for "pago". Duas
// baixas concorrentes nunca aplicam o pagamento duas vezes.
func (r *Repository) MarcarPaga(id, escolaID uint, p Pagamento) (*Cobranca, error) {
	var c Cobranca
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Cobranca{}).
			Where("id = ? AND escola_id = ? AND status <> ?", id, escolaID, StatusPago).
			Updates(map[string]interface{}{
				"status":               StatusPago,
				"data_pagamento":       p.Data,
				"valor_pago":           p.Valor,
				"metodo_pagamento":     p.Metodo,
				"referencia_transacao": p.Referencia,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Nada mudou: ou não existe, ou já estava paga.
			var existe int64
			if err := tx.Model(&Cobranca{}).
				Where("id = ? AND escola_id = ?", id, escolaID).
				Count(&existe).Error; err != nil {
				return err
			}
			if existe == 0 {
				return apperrors.NewNotFoundError("Cobrança não encontrada")
			}
			return apperrors.NewPreconditionError("Cobrança já está paga")
		}
		return tx.Where("id = ? AND escola_id = ?", id, escolaID).First(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DesfazerPagamento desfaz a baixa com o mesmo check-and-set: o UPDATE
// só acerta se o status for "pago". Volta para a_vencer; se o vencimento
// já passou, a leitura volta a derivar atrasado sozinha.
func (r *Repository) DesfazerPagamento(id, escolaID uint) (*Cobranca, error) {
	var c Cobranca
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Cobranca{}).
			Where("id = ? AND escola_id = ? AND status = ?", id, escolaID, StatusPago).
			Updates(map[string]interface{}{
				"status":               StatusAVencer,
				"data_pagamento":       nil,
				"valor_pago":           0,
				"metodo_pagamento":     "",
				"referencia_transacao": "",
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existe int64
			if err := tx.Model(&Cobranca{}).
				Where("id = ? AND escola_id = ?", id, escolaID).
				Count(&existe).Error; err != nil {
				return err
			}
			if existe == 0 {
				return apperrors.NewNotFoundError("Cobrança não encontrada")
			}
			return apperrors.NewPreconditionError("Cobrança não está paga")
		}
		return tx.Where("id = ? AND escola_id = ?", id, escolaID).First(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Cancelar marca a cobrança como cancelada; cobrança paga precisa ter o
// pagamento desfeito antes.
func (r *Repository) Cancelar(id, escolaID uint) error {
	res := r.DB.Model(&Cobranca{}).
		Where("id = ? AND escola_id = ? AND status = ?", id, escolaID, StatusAVencer).
		Update("status", StatusCancelado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var existe int64
		if err := r.DB.Model(&Cobranca{}).
			Where("id = ? AND escola_id = ?", id, escolaID).
			Count(&existe).Error; err != nil {
			return err
		}
		if existe == 0 {
			return apperrors.NewNotFoundError("Cobrança não encontrada")
		}
		return apperrors.NewPreconditionError("Cobrança paga ou já cancelada")
	}
	return nil
}

// Excluir remove a cobrança. A trava "só excluir não pagas" fica com o
// chamador; o razão não a impõe.
func (r *Repository) Excluir(id, escolaID uint) error {
	res := r.DB.Where("escola_id = ?", escolaID).Delete(&Cobranca{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
