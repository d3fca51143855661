// internal/matricula/repository.go
package matricula

import (
	"errors"

	"github.com/EscolaViva/api-gestao/internal/notificacao"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de Matricula e expõe o guard
// de matrícula ativa consumido pela frequência e pelas cobranças.
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

/* ============================= CRUD básico ============================= */

// Criar insere uma nova matrícula.
func (r *Repository) Criar(m *Matricula) error {
	return r.DB.Create(m).Error
}

// FindByID busca uma matrícula pelo ID dentro da escola.
func (r *Repository) FindByID(id, escolaID uint) (*Matricula, error) {
	var m Matricula
	err := r.DB.Where("id = ? AND escola_id = ?", id, escolaID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListarPorEscola lista matrículas da escola, com filtros opcionais.
func (r *Repository) ListarPorEscola(escolaID uint, alunoID uint, status string) ([]Matricula, error) {
	q := r.DB.Where("escola_id = ?", escolaID)
	if alunoID != 0 {
		q = q.Where("aluno_id = ?", alunoID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Matricula
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// AlterarStatus muda o status de uma matrícula existente.
func (r *Repository) AlterarStatus(id, escolaID uint, status string) error {
	res := r.DB.Model(&Matricula{}).
		Where("id = ? AND escola_id = ?", id, escolaID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ============================== Guard ============================== */

// MatriculaAtiva devolve a matrícula ativa do aluno na escola.
// A unicidade de matrícula ativa por aluno não é garantida pelo banco;
// havendo duplicata, vence a mais recente e a equipe é alertada.
func (r *Repository) MatriculaAtiva(alunoID, escolaID uint) (*Matricula, error) {
	var ativas []Matricula
	err := r.DB.
		Where("aluno_id = ? AND escola_id = ? AND status = ?", alunoID, escolaID, StatusAtiva).
		Order("created_at DESC").
		Find(&ativas).Error
	if err != nil {
		return nil, err
	}
	if len(ativas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	if len(ativas) > 1 {
		go notificacao.EnviarAlertaMatriculaDuplicada(escolaID, alunoID, len(ativas))
	}
	return &ativas[0], nil
}

// TemMatriculaAtiva responde se o aluno possui matrícula ativa na escola.
func (r *Repository) TemMatriculaAtiva(alunoID, escolaID uint) (bool, error) {
	_, err := r.MatriculaAtiva(alunoID, escolaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SemMatriculaAtiva devolve, do conjunto informado, os alunos SEM matrícula
// ativa na escola. Usado pelo lote de frequência para rejeitar tudo de uma
// vez com a contagem exata de ofensores.
func (r *Repository) SemMatriculaAtiva(alunoIDs []uint, escolaID uint) ([]uint, error) {
	if len(alunoIDs) == 0 {
		return nil, nil
	}

	var comAtiva []uint
	err := r.DB.Model(&Matricula{}).
		Where("escola_id = ? AND status = ? AND aluno_id IN ?", escolaID, StatusAtiva, alunoIDs).
		Distinct().
		Pluck("aluno_id", &comAtiva).Error
	if err != nil {
		return nil, err
	}

	ativos := make(map[uint]bool, len(comAtiva))
	for _, id := range comAtiva {
		ativos[id] = true
	}

	var sem []uint
	for _, id := range alunoIDs {
		if !ativos[id] {
			sem = append(sem, id)
		}
	}
	return sem, nil
}
