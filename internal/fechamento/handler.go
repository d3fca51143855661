package fechamento

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/gorilla/mux"
)

// Handler gerencia rotas do fechamento mensal
type Handler struct {
	Repo *Repository
}

// NewHandler cria um novo Handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /fechamentos?ano=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	var ano int
	if s := r.URL.Query().Get("ano"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 2100 {
			apperrors.Escrever(w, apperrors.NewValidationError("Parâmetro 'ano' inválido"))
			return
		}
		ano = v
	}

	linhas, err := h.Repo.Fechamentos(escolaID, ano)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(linhas)
}

// GET /fechamentos/{competencia}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	competencia := mux.Vars(r)["competencia"]

	if _, err := time.Parse("2006-01", competencia); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Competência inválida (use AAAA-MM)"))
		return
	}

	linha, err := h.Repo.FechamentoDoMes(escolaID, competencia)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(linha)
}
