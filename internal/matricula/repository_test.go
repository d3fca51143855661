package matricula

import (
	"testing"
	"time"

	"github.com/EscolaViva/api-gestao/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func novaRepo(t *testing.T) (*Repository, *gorm.DB) {
	db := testdb.Abrir(t)
	require.NoError(t, Migrate(db))
	return NewRepository(db), db
}

func TestMatriculaAtiva(t *testing.T) {
	repo, _ := novaRepo(t)

	require.NoError(t, repo.Criar(&Matricula{
		EscolaID: 1, AlunoID: 10, TurmaID: 3, AnoLetivo: 2024,
		Status: StatusAtiva, ValorContratado: 750,
	}))

	m, err := repo.MatriculaAtiva(10, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(3), m.TurmaID)
	assert.Equal(t, 750.0, m.ValorContratado)

	ok, err := repo.TemMatriculaAtiva(10, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	// Mesmo aluno em outra escola: nada.
	ok, err = repo.TemMatriculaAtiva(10, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatriculaAtivaIgnoraEncerradas(t *testing.T) {
	repo, _ := novaRepo(t)

	require.NoError(t, repo.Criar(&Matricula{
		EscolaID: 1, AlunoID: 10, TurmaID: 3, AnoLetivo: 2023, Status: StatusConcluida,
	}))
	require.NoError(t, repo.Criar(&Matricula{
		EscolaID: 1, AlunoID: 11, TurmaID: 3, AnoLetivo: 2024, Status: StatusCancelada,
	}))

	for _, aluno := range []uint{10, 11} {
		ok, err := repo.TemMatriculaAtiva(aluno, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestMatriculaAtivaDuplicadaVenceAMaisRecente(t *testing.T) {
	repo, db := novaRepo(t)

	antiga := Matricula{
		EscolaID: 1, AlunoID: 10, TurmaID: 3, AnoLetivo: 2024,
		Status: StatusAtiva, ValorContratado: 700,
	}
	require.NoError(t, repo.Criar(&antiga))
	// força uma data de criação anterior
	require.NoError(t, db.Model(&antiga).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	recente := Matricula{
		EscolaID: 1, AlunoID: 10, TurmaID: 5, AnoLetivo: 2024,
		Status: StatusAtiva, ValorContratado: 820,
	}
	require.NoError(t, repo.Criar(&recente))

	m, err := repo.MatriculaAtiva(10, 1)
	require.NoError(t, err)
	assert.Equal(t, recente.ID, m.ID)
	assert.Equal(t, 820.0, m.ValorContratado)
}

func TestSemMatriculaAtiva(t *testing.T) {
	repo, _ := novaRepo(t)

	require.NoError(t, repo.Criar(&Matricula{
		EscolaID: 1, AlunoID: 10, TurmaID: 3, AnoLetivo: 2024, Status: StatusAtiva,
	}))
	require.NoError(t, repo.Criar(&Matricula{
		EscolaID: 1, AlunoID: 11, TurmaID: 3, AnoLetivo: 2024, Status: StatusCancelada,
	}))

	sem, err := repo.SemMatriculaAtiva([]uint{10, 11, 12}, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{11, 12}, sem)

	sem, err = repo.SemMatriculaAtiva(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, sem)
}

func TestAlterarStatus(t *testing.T) {
	repo, _ := novaRepo(t)

	m := Matricula{EscolaID: 1, AlunoID: 10, TurmaID: 3, AnoLetivo: 2024, Status: StatusAtiva}
	require.NoError(t, repo.Criar(&m))

	require.NoError(t, repo.AlterarStatus(m.ID, 1, StatusConcluida))

	ok, err := repo.TemMatriculaAtiva(10, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Outra escola não altera a matrícula.
	err = repo.AlterarStatus(m.ID, 2, StatusAtiva)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
