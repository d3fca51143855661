// internal/assinatura/repository.go
package assinatura

import (
	"errors"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"gorm.io/gorm"
)

// Repository encapsula assinaturas e solicitações de upgrade.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// AssinaturaAtiva devolve a assinatura vigente da escola.
func (r *Repository) AssinaturaAtiva(escolaID uint) (*Assinatura, error) {
	var a Assinatura
	err := r.DB.
		Where("escola_id = ? AND status = ?", escolaID, AssinaturaAtiva).
		Order("created_at DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CriarSolicitacao abre um pedido de upgrade com o retrato do plano
// vigente. Escola sem assinatura ativa não tem o que ampliar.
func (r *Repository) CriarSolicitacao(escolaID uint, limiteSolicitado int, valorProposto float64) (*SolicitacaoUpgrade, error) {
	atual, err := r.AssinaturaAtiva(escolaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewPreconditionError("Escola sem assinatura ativa")
	}
	if err != nil {
		return nil, err
	}

	s := SolicitacaoUpgrade{
		EscolaID:         escolaID,
		Status:           SolicitacaoPendente,
		LimiteAtual:      atual.LimiteAlunos,
		LimiteSolicitado: limiteSolicitado,
		ValorAtual:       atual.ValorTotal,
		ValorProposto:    valorProposto,
	}
	if err := r.DB.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListarSolicitacoes lista as solicitações da escola, mais recente antes.
func (r *Repository) ListarSolicitacoes(escolaID uint, status string) ([]SolicitacaoUpgrade, error) {
	q := r.DB.Where("escola_id = ?", escolaID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []SolicitacaoUpgrade
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// FindSolicitacao busca uma solicitação pelo ID dentro da escola.
func (r *Repository) FindSolicitacao(id, escolaID uint) (*SolicitacaoUpgrade, error) {
	var s SolicitacaoUpgrade
	err := r.DB.Where("id = ? AND escola_id = ?", id, escolaID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Aprovar fecha a solicitação e troca a assinatura como uma unidade:
// (a) solicitação pendente -> aprovado (check-and-set);
// (b) assinatura ativa atual -> arquivada;
// (c) nova assinatura ativa com limite/preço aprovados.
// Qualquer falha desfaz tudo; solicitação aprovada apontando para
// assinatura velha é bug, não estado intermediário aceitável.
func (r *Repository) Aprovar(id, escolaID uint, novoLimite int, novoValor float64) (*Assinatura, error) {
	var nova Assinatura
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&SolicitacaoUpgrade{}).
			Where("id = ? AND escola_id = ? AND status = ?", id, escolaID, SolicitacaoPendente).
			Update("status", SolicitacaoAprovada)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.erroSolicitacaoNaoPendente(tx, id, escolaID)
		}

		if err := tx.Model(&Assinatura{}).
			Where("escola_id = ? AND status = ?", escolaID, AssinaturaAtiva).
			Update("status", AssinaturaArquivada).Error; err != nil {
			return err
		}

		nova = Assinatura{
			EscolaID:     escolaID,
			Status:       AssinaturaAtiva,
			LimiteAlunos: novoLimite,
			ValorTotal:   novoValor,
		}
		return tx.Create(&nova).Error
	})
	if err != nil {
		return nil, err
	}
	return &nova, nil
}

// Recusar fecha a solicitação sem nenhum outro efeito.
func (r *Repository) Recusar(id, escolaID uint) error {
	res := r.DB.Model(&SolicitacaoUpgrade{}).
		Where("id = ? AND escola_id = ? AND status = ?", id, escolaID, SolicitacaoPendente).
		Update("status", SolicitacaoRecusada)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.erroSolicitacaoNaoPendente(r.DB, id, escolaID)
	}
	return nil
}

// erroSolicitacaoNaoPendente distingue id inexistente de estado terminal.
func (r *Repository) erroSolicitacaoNaoPendente(db *gorm.DB, id, escolaID uint) error {
	var s SolicitacaoUpgrade
	err := db.Where("id = ? AND escola_id = ?", id, escolaID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("Solicitação não encontrada")
	}
	if err != nil {
		return err
	}
	return apperrors.NewPreconditionError("Solicitação já está " + s.Status)
}
