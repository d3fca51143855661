package frequencia

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/EscolaViva/api-gestao/internal/metrics"
	"github.com/EscolaViva/api-gestao/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler gerencia rotas de frequência
type Handler struct {
	Repo     *Repository
	Validate *validator.Validate
}

// NewHandler cria um novo Handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, Validate: validator.New()}
}

// PUT /turmas/{id}/frequencia/{data}
func (h *Handler) SalvarLote(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	vars := mux.Vars(r)

	turmaID, err := strconv.Atoi(vars["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de turma inválido"))
		return
	}
	data, err := utils.ParseData(vars["data"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Data inválida (use AAAA-MM-DD)"))
		return
	}

	var dto SalvarLoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
		return
	}
	if err := h.Validate.Struct(dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
		return
	}

	entradas := make([]Entrada, 0, len(dto.Entradas))
	for _, e := range dto.Entradas {
		entradas = append(entradas, Entrada{
			AlunoID:       e.AlunoID,
			Status:        e.Status,
			Justificativa: e.Justificativa,
		})
	}

	if err := h.Repo.SalvarLote(escolaID, uint(turmaID), data, entradas); err != nil {
		metrics.LotesFrequencia.WithLabelValues(fmt.Sprint(escolaID), "rejeitado").Inc()
		apperrors.Escrever(w, err)
		return
	}
	metrics.LotesFrequencia.WithLabelValues(fmt.Sprint(escolaID), "aceito").Inc()

	registros, err := h.Repo.BuscarLote(escolaID, uint(turmaID), data)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registros)
}

// GET /turmas/{id}/frequencia/{data}
func (h *Handler) BuscarLote(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	vars := mux.Vars(r)

	turmaID, err := strconv.Atoi(vars["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de turma inválido"))
		return
	}
	data, err := utils.ParseData(vars["data"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Data inválida (use AAAA-MM-DD)"))
		return
	}

	registros, err := h.Repo.BuscarLote(escolaID, uint(turmaID), data)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registros)
}
