package frequencia

import (
	"testing"
	"time"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/matricula"
	"github.com/EscolaViva/api-gestao/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func preparar(t *testing.T) (*Repository, *matricula.Repository, *gorm.DB) {
	db := testdb.Abrir(t)
	require.NoError(t, matricula.Migrate(db))
	require.NoError(t, Migrate(db))
	mat := matricula.NewRepository(db)
	return NewRepository(db, mat), mat, db
}

func matricular(t *testing.T, mat *matricula.Repository, escolaID uint, alunoIDs ...uint) {
	t.Helper()
	for _, alunoID := range alunoIDs {
		require.NoError(t, mat.Criar(&matricula.Matricula{
			EscolaID:  escolaID,
			AlunoID:   alunoID,
			TurmaID:   1,
			AnoLetivo: 2024,
			Status:    matricula.StatusAtiva,
		}))
	}
}

func TestSalvarLoteIdempotente(t *testing.T) {
	repo, mat, _ := preparar(t)
	matricular(t, mat, 1, 10, 11, 12)

	dia := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	lote := []Entrada{
		{AlunoID: 10, Status: StatusPresente},
		{AlunoID: 11, Status: StatusFalta},
		{AlunoID: 12, Status: StatusJustificada, Justificativa: "atestado médico"},
	}

	require.NoError(t, repo.SalvarLote(1, 1, dia, lote))
	require.NoError(t, repo.SalvarLote(1, 1, dia, lote))

	registros, err := repo.BuscarLote(1, 1, dia)
	require.NoError(t, err)
	require.Len(t, registros, 3, "regravar o mesmo lote não pode duplicar linhas")
	assert.Equal(t, StatusPresente, registros[0].Status)
	assert.Equal(t, StatusFalta, registros[1].Status)
	assert.Equal(t, "atestado médico", registros[2].Justificativa)
}

func TestSalvarLoteSubstituiConjuntoInteiro(t *testing.T) {
	repo, mat, _ := preparar(t)
	matricular(t, mat, 1, 10, 11)

	dia := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SalvarLote(1, 1, dia, []Entrada{
		{AlunoID: 10, Status: StatusPresente},
		{AlunoID: 11, Status: StatusPresente},
	}))

	// O segundo salvamento tem só um aluno: a linha do outro sai.
	require.NoError(t, repo.SalvarLote(1, 1, dia, []Entrada{
		{AlunoID: 10, Status: StatusFalta},
	}))

	registros, err := repo.BuscarLote(1, 1, dia)
	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, uint(10), registros[0].AlunoID)
	assert.Equal(t, StatusFalta, registros[0].Status)
}

func TestSalvarLoteRejeitaSemMatricula(t *testing.T) {
	repo, mat, _ := preparar(t)
	// 9 com matrícula ativa; o aluno 99 sem nenhuma.
	matricular(t, mat, 1, 10, 11, 12, 13, 14, 15, 16, 17, 18)

	dia := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	lote := make([]Entrada, 0, 10)
	for _, id := range []uint{10, 11, 12, 13, 14, 15, 16, 17, 18, 99} {
		lote = append(lote, Entrada{AlunoID: id, Status: StatusPresente})
	}

	err := repo.SalvarLote(1, 1, dia, lote)
	var pre *apperrors.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, 1, pre.Detalhes["alunosSemMatricula"])
	assert.Contains(t, pre.Mensagem, "1 aluno(s) sem matrícula ativa")

	// Nada foi gravado.
	registros, err := repo.BuscarLote(1, 1, dia)
	require.NoError(t, err)
	assert.Empty(t, registros)
}

func TestSalvarLoteMatriculaCancelada(t *testing.T) {
	repo, mat, _ := preparar(t)
	matricular(t, mat, 1, 10)

	m := matricula.Matricula{
		EscolaID:  1,
		AlunoID:   20,
		TurmaID:   1,
		AnoLetivo: 2024,
		Status:    matricula.StatusCancelada,
	}
	require.NoError(t, mat.Criar(&m))

	dia := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	err := repo.SalvarLote(1, 1, dia, []Entrada{
		{AlunoID: 10, Status: StatusPresente},
		{AlunoID: 20, Status: StatusPresente},
	})
	var pre *apperrors.PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, 1, pre.Detalhes["alunosSemMatricula"])
}

func TestSalvarLoteAlunoDuplicado(t *testing.T) {
	repo, mat, _ := preparar(t)
	matricular(t, mat, 1, 10)

	dia := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	err := repo.SalvarLote(1, 1, dia, []Entrada{
		{AlunoID: 10, Status: StatusPresente},
		{AlunoID: 10, Status: StatusFalta},
	})
	var val *apperrors.ValidationError
	require.ErrorAs(t, err, &val)
}

func TestLotesDeDatasDiferentesNaoSeMisturam(t *testing.T) {
	repo, mat, _ := preparar(t)
	matricular(t, mat, 1, 10)

	d1 := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SalvarLote(1, 1, d1, []Entrada{{AlunoID: 10, Status: StatusPresente}}))
	require.NoError(t, repo.SalvarLote(1, 1, d2, []Entrada{{AlunoID: 10, Status: StatusFalta}}))

	r1, err := repo.BuscarLote(1, 1, d1)
	require.NoError(t, err)
	r2, err := repo.BuscarLote(1, 1, d2)
	require.NoError(t, err)

	require.Len(t, r1, 1)
	require.Len(t, r2, 1)
	assert.Equal(t, StatusPresente, r1[0].Status)
	assert.Equal(t, StatusFalta, r2[0].Status)
}
