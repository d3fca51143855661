package matricula

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de matrícula
type Handler struct {
	Repo     *Repository
	Validate *validator.Validate
}

// NewHandler cria um novo Handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, Validate: validator.New()}
}

// POST /matriculas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	var dto CriarMatriculaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
		return
	}
	if err := h.Validate.Struct(dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
		return
	}

	tipo := dto.Tipo
	if tipo == "" {
		tipo = TipoNova
	}

	m := Matricula{
		EscolaID:        escolaID,
		AlunoID:         dto.AlunoID,
		TurmaID:         dto.TurmaID,
		Tipo:            tipo,
		AnoLetivo:       dto.AnoLetivo,
		Serie:           dto.Serie,
		Turno:           dto.Turno,
		Status:          StatusAtiva,
		ValorContratado: dto.ValorContratado,
	}
	if err := h.Repo.Criar(&m); err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// GET /matriculas?aluno=&status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	var alunoID uint
	if s := r.URL.Query().Get("aluno"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			apperrors.Escrever(w, apperrors.NewValidationError("Parâmetro 'aluno' inválido"))
			return
		}
		alunoID = uint(v)
	}
	status := r.URL.Query().Get("status")
	if status != "" && !StatusValido(status) {
		apperrors.Escrever(w, apperrors.NewValidationError("Status de matrícula desconhecido"))
		return
	}

	list, err := h.Repo.ListarPorEscola(escolaID, alunoID, status)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// PATCH /matriculas/{id}/status
func (h *Handler) AlterarStatus(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de matrícula inválido"))
		return
	}

	var dto AlterarStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
		return
	}
	if err := h.Validate.Struct(dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
		return
	}

	if err := h.Repo.AlterarStatus(uint(id), escolaID, dto.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Escrever(w, apperrors.NewNotFoundError("Matrícula não encontrada"))
			return
		}
		apperrors.Escrever(w, err)
		return
	}

	m, err := h.Repo.FindByID(uint(id), escolaID)
	if err != nil {
		apperrors.Escrever(w, apperrors.NewNotFoundError("Matrícula não encontrada após atualização"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// GET /alunos/{id}/matricula-ativa
// Usado pelas listagens para marcar "sem matrícula" sem quebrar a tela.
func (h *Handler) MatriculaAtivaDoAluno(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	alunoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de aluno inválido"))
		return
	}

	m, err := h.Repo.MatriculaAtiva(uint(alunoID), escolaID)
	w.Header().Set("Content-Type", "application/json")
	if errors.Is(err, gorm.ErrRecordNotFound) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"matricula":    nil,
			"semMatricula": true,
		})
		return
	}
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matricula":    m,
		"semMatricula": false,
	})
}
