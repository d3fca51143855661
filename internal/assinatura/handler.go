package assinatura

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/EscolaViva/api-gestao/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de assinatura e upgrade
type Handler struct {
	Repo     *Repository
	Validate *validator.Validate
}

// NewHandler cria um novo Handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, Validate: validator.New()}
}

// GET /assinatura
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	a, err := h.Repo.AssinaturaAtiva(escolaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Escrever(w, apperrors.NewNotFoundError("Escola sem assinatura ativa"))
		return
	}
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// POST /solicitacoes-upgrade
func (h *Handler) CriarSolicitacao(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	var dto CriarSolicitacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
		return
	}
	if err := h.Validate.Struct(dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
		return
	}

	s, err := h.Repo.CriarSolicitacao(escolaID, dto.LimiteSolicitado, dto.ValorProposto)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// GET /solicitacoes-upgrade?status=
func (h *Handler) ListarSolicitacoes(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	status := r.URL.Query().Get("status")
	if status != "" && status != SolicitacaoPendente && status != SolicitacaoAprovada && status != SolicitacaoRecusada {
		apperrors.Escrever(w, apperrors.NewValidationError("Status de solicitação desconhecido"))
		return
	}

	list, err := h.Repo.ListarSolicitacoes(escolaID, status)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// POST /solicitacoes-upgrade/{id}/aprovacao
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de solicitação inválido"))
		return
	}

	var dto AprovarSolicitacaoDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
			return
		}
		if err := h.Validate.Struct(dto); err != nil {
			apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
			return
		}
	}

	s, err := h.Repo.FindSolicitacao(uint(id), escolaID)
	if err != nil {
		apperrors.Escrever(w, apperrors.NewNotFoundError("Solicitação não encontrada"))
		return
	}

	novoLimite := dto.NovoLimite
	if novoLimite == 0 {
		novoLimite = s.LimiteSolicitado
	}
	novoValor := dto.NovoValor
	if novoValor == 0 {
		novoValor = s.ValorProposto
	}

	nova, err := h.Repo.Aprovar(uint(id), escolaID, novoLimite, novoValor)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	metrics.UpgradesDecididos.WithLabelValues(fmt.Sprint(escolaID), "aprovado").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(nova)
}

// POST /solicitacoes-upgrade/{id}/recusa
func (h *Handler) Recusar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de solicitação inválido"))
		return
	}

	if err := h.Repo.Recusar(uint(id), escolaID); err != nil {
		apperrors.Escrever(w, err)
		return
	}

	metrics.UpgradesDecididos.WithLabelValues(fmt.Sprint(escolaID), "recusado").Inc()

	s, err := h.Repo.FindSolicitacao(uint(id), escolaID)
	if err != nil {
		apperrors.Escrever(w, apperrors.NewNotFoundError("Solicitação não encontrada após atualização"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
