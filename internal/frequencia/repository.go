// internal/frequencia/repository.go
package frequencia

import (
	"fmt"
	"time"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/matricula"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Repository grava lotes de frequência. Depende do guard de matrícula:
// nenhum registro entra para aluno sem matrícula ativa.
type Repository struct {
	DB         *gorm.DB
	Matriculas *matricula.Repository
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB, matriculas *matricula.Repository) *Repository {
	return &Repository{DB: db, Matriculas: matriculas}
}

// Entrada é um item do lote, já validado pelo handler.
type Entrada struct {
	AlunoID       uint
	Status        string
	Justificativa string
}

// SalvarLote substitui o conjunto inteiro de registros de uma
// (escola, turma, data). Tudo-ou-nada:
//
//  1. todos os alunos do lote passam pelo guard de matrícula ativa; um
//     reprovado rejeita o lote inteiro com a contagem de ofensores;
//  2. dentro de uma única transação, um advisory lock por
//     (escola, turma, data) serializa gravadores concorrentes e o
//     conjunto antigo é apagado e reinserido.
//
// Regravar o mesmo lote produz o mesmo conjunto final (idempotente).
func (r *Repository) SalvarLote(escolaID, turmaID uint, data time.Time, entradas []Entrada) error {
	if len(entradas) == 0 {
		return apperrors.NewValidationError("Lote de frequência vazio")
	}

	vistos := make(map[uint]bool, len(entradas))
	alunoIDs := make([]uint, 0, len(entradas))
	for _, e := range entradas {
		if !StatusValido(e.Status) {
			return apperrors.NewValidationError("Status de frequência desconhecido: " + e.Status)
		}
		if vistos[e.AlunoID] {
			return apperrors.NewValidationError(fmt.Sprintf("Aluno %d aparece mais de uma vez no lote", e.AlunoID))
		}
		vistos[e.AlunoID] = true
		alunoIDs = append(alunoIDs, e.AlunoID)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		// Serializa gravadores do mesmo lote; liberado no fim da transação.
		chave := fmt.Sprintf("frequencia:%d:%d:%s", escolaID, turmaID, data.Format("2006-01-02"))
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?)::bigint)", chave).Error; err != nil {
			return err
		}

		// Guard dentro da transação: o lote só entra se TODOS os alunos
		// tiverem matrícula ativa agora.
		sem, err := r.Matriculas.WithDB(tx).SemMatriculaAtiva(alunoIDs, escolaID)
		if err != nil {
			return err
		}
		if len(sem) > 0 {
			return apperrors.NewPreconditionErrorDetalhes(
				fmt.Sprintf("%d aluno(s) sem matrícula ativa", len(sem)),
				map[string]interface{}{
					"alunosSemMatricula": len(sem),
					"alunos":             sem,
				},
			)
		}

		dia := datatypes.Date(data)
		if err := tx.
			Where("escola_id = ? AND turma_id = ? AND data = ?", escolaID, turmaID, dia).
			Delete(&RegistroFrequencia{}).Error; err != nil {
			return err
		}

		registros := make([]RegistroFrequencia, 0, len(entradas))
		for _, e := range entradas {
			registros = append(registros, RegistroFrequencia{
				EscolaID:      escolaID,
				TurmaID:       turmaID,
				Data:          dia,
				AlunoID:       e.AlunoID,
				Status:        e.Status,
				Justificativa: e.Justificativa,
			})
		}
		return tx.Create(&registros).Error
	})
}

// BuscarLote devolve o conjunto atual da (escola, turma, data).
func (r *Repository) BuscarLote(escolaID, turmaID uint, data time.Time) ([]RegistroFrequencia, error) {
	var registros []RegistroFrequencia
	err := r.DB.
		Where("escola_id = ? AND turma_id = ? AND data = ?", escolaID, turmaID, datatypes.Date(data)).
		Order("aluno_id ASC").
		Find(&registros).Error
	return registros, err
}
