package configfinanceira

import (
	"encoding/json"
	"net/http"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/go-playground/validator/v10"
)

// Handler gerencia rotas de configuração financeira
type Handler struct {
	Repo     *Repository
	Validate *validator.Validate
}

// NewHandler cria um novo Handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, Validate: validator.New()}
}

// PUT /config-financeira
func (h *Handler) Salvar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	var dto SalvarConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
		return
	}
	if err := h.Validate.Struct(dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
		return
	}
	if dto.PixManual && dto.PixAutomatico {
		apperrors.Escrever(w, apperrors.NewValidationError("PIX manual e automático são mutuamente exclusivos"))
		return
	}

	cfg := ConfigFinanceira{
		EscolaID:                       escolaID,
		DiaVencimento:                  dto.DiaVencimento,
		DiasCarencia:                   dto.DiasCarencia,
		MultaPercentual:                dto.MultaPercentual,
		MultaFixa:                      dto.MultaFixa,
		JurosMensalPercentual:          dto.JurosMensalPercentual,
		DescontoIrmaosPercentual:       dto.DescontoIrmaosPercentual,
		DescontoPontualidadePercentual: dto.DescontoPontualidadePercentual,
		PixManual:                      dto.PixManual,
		PixAutomatico:                  dto.PixAutomatico,
		MensalidadesPorTurma:           dto.MensalidadesPorTurma,
	}

	if err := h.Repo.Upsert(&cfg); err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// GET /config-financeira
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	cfg, salva, err := h.Repo.BuscarPorEscola(escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"config": cfg,
		"padrao": !salva,
	})
}
