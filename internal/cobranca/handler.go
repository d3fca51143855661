package cobranca

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/EscolaViva/api-gestao/internal/apperrors"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/EscolaViva/api-gestao/internal/configfinanceira"
	"github.com/EscolaViva/api-gestao/internal/matricula"
	"github.com/EscolaViva/api-gestao/internal/metrics"
	"github.com/EscolaViva/api-gestao/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de cobrança
type Handler struct {
	Repo       *Repository
	Config     *configfinanceira.Repository
	Matriculas *matricula.Repository
	Validate   *validator.Validate

	// Agora permite injetar o relógio nos testes.
	Agora func() time.Time
}

// NewHandler cria um novo Handler
func NewHandler(repo *Repository, cfg *configfinanceira.Repository, mat *matricula.Repository) *Handler {
	return &Handler{
		Repo:       repo,
		Config:     cfg,
		Matriculas: mat,
		Validate:   validator.New(),
		Agora:      time.Now,
	}
}

// POST /cobrancas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	var dto CriarCobrancaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("JSON mal formado"))
		return
	}
	if err := h.Validate.Struct(dto); err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Campos inválidos: "+err.Error()))
		return
	}

	vencimento, err := utils.ParseData(dto.DataVencimento)
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("Data de vencimento inválida"))
		return
	}

	cfg, _, err := h.Config.BuscarPorEscola(escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	valor := dto.Valor
	if valor == 0 {
		valor, err = h.valorPadrao(escolaID, dto.AlunoID, dto.TurmaID, cfg)
		if err != nil {
			apperrors.Escrever(w, err)
			return
		}
	}
	if valor <= 0 {
		apperrors.Escrever(w, apperrors.NewValidationError("Valor deve ser maior que zero"))
		return
	}

	c := Cobranca{
		EscolaID:                       escolaID,
		AlunoID:                        dto.AlunoID,
		Descricao:                      dto.Descricao,
		Valor:                          ArredondarCentavos(valor),
		DescontoIrmaosPercentual:       cfg.DescontoIrmaosPercentual,
		DescontoPontualidadePercentual: cfg.DescontoPontualidadePercentual,
		DataVencimento:                 vencimento,
		Status:                         StatusAVencer,
	}
	if err := h.Repo.Criar(&c); err != nil {
		apperrors.Escrever(w, err)
		return
	}

	metrics.CobrancasCriadas.WithLabelValues(fmt.Sprint(escolaID)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.paraDTO(&c, cfg))
}

// valorPadrao resolve o valor sugerido, nesta ordem:
// 1) mensalidade da turma na config financeira;
// 2) valor contratado da matrícula ativa do aluno;
// 3) nada — o operador precisa informar manualmente.
func (h *Handler) valorPadrao(escolaID, alunoID, turmaID uint, cfg *configfinanceira.ConfigFinanceira) (float64, error) {
	m, err := h.Matriculas.MatriculaAtiva(alunoID, escolaID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if turmaID == 0 && m != nil {
		turmaID = m.TurmaID
	}
	if turmaID != 0 {
		if v, ok := cfg.MensalidadePadraoTurma(turmaID); ok && v > 0 {
			return v, nil
		}
	}
	if m != nil && m.ValorContratado > 0 {
		return m.ValorContratado, nil
	}
	return 0, apperrors.NewValidationError("Sem valor padrão para o aluno; informe o valor manualmente")
}

// GET /cobrancas?status=&aluno=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)

	filtro := r.URL.Query().Get("status")
	if filtro != "" && !StatusFiltroValido(filtro) {
		apperrors.Escrever(w, apperrors.NewValidationError("Status de cobrança desconhecido"))
		return
	}
	var alunoID uint
	if s := r.URL.Query().Get("aluno"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			apperrors.Escrever(w, apperrors.NewValidationError("Parâmetro 'aluno' inválido"))
			return
		}
		alunoID = uint(v)
	}

	list, err := h.Repo.ListarPorEscola(escolaID, alunoID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}
	cfg, _, err := h.Config.BuscarPorEscola(escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	// O filtro é sobre o status efetivo, derivado agora; "atrasado" só
	// existe nesta visão.
	out := make([]CobrancaDTO, 0, len(list))
	for i := range list {
		d := h.paraDTO(&list[i], cfg)
		if filtro != "" && d.StatusEfetivo != filtro {
			continue
		}
		out = append(out, d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GET /cobrancas/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de cobrança inválido"))
		return
	}

	c, err := h.Repo.FindByID(uint(id), escolaID)
	if err != nil {
		apperrors.Escrever(w, apperrors.NewNotFoundError("Cobrança não encontrada"))
		return
	}
	cfg, _, err := h.Config.BuscarPorEscola(escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.paraDTO(c, cfg))
}

// POST /cobrancas/{id}/pagamento
func (h *Handler) MarcarPaga(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de cobrança inválido"))
		return
	}

	var dto RegistrarPagamentoDTO
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

	dataPagamento := TruncarDia(h.Agora())
	if dto.DataPagamento != "" {
		dataPagamento, err = utils.ParseData(dto.DataPagamento)
		if err != nil {
			apperrors.Escrever(w, apperrors.NewValidationError("Data de pagamento inválida"))
			return
		}
	}

	c, err := h.Repo.FindByID(uint(id), escolaID)
	if err != nil {
		apperrors.Escrever(w, apperrors.NewNotFoundError("Cobrança não encontrada"))
		return
	}
	cfg, _, err := h.Config.BuscarPorEscola(escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	// Sem valor informado, a baixa usa o total sugerido na data do
	// pagamento (valor + multa + juros).
	valorPago := dto.ValorPago
	if valorPago == 0 {
		valorPago = CalcularTotalDevido(c, cfg, dataPagamento)
	}
	referencia := dto.ReferenciaTransacao
	if referencia == "" {
		referencia = uuid.NewString()
	}
	metodo := dto.Metodo
	if metodo == "" {
		metodo = "pix"
	}

	pago, err := h.Repo.MarcarPaga(uint(id), escolaID, Pagamento{
		Data:       dataPagamento,
		Valor:      ArredondarCentavos(valorPago),
		Metodo:     metodo,
		Referencia: referencia,
	})
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	metrics.PagamentosRegistrados.WithLabelValues(fmt.Sprint(escolaID)).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.paraDTO(pago, cfg))
}

// DELETE /cobrancas/{id}/pagamento
func (h *Handler) DesfazerPagamento(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de cobrança inválido"))
		return
	}

	c, err := h.Repo.DesfazerPagamento(uint(id), escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}
	cfg, _, err := h.Config.BuscarPorEscola(escolaID)
	if err != nil {
		apperrors.Escrever(w, err)
		return
	}

	metrics.PagamentosDesfeitos.WithLabelValues(fmt.Sprint(escolaID)).Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.paraDTO(c, cfg))
}

// POST /cobrancas/{id}/cancelamento
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de cobrança inválido"))
		return
	}

	if err := h.Repo.Cancelar(uint(id), escolaID); err != nil {
		apperrors.Escrever(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /cobrancas/{id}
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	escolaID := auth.EscolaDoContexto(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Escrever(w, apperrors.NewValidationError("ID de cobrança inválido"))
		return
	}

	if err := h.Repo.Excluir(uint(id), escolaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Escrever(w, apperrors.NewNotFoundError("Cobrança não encontrada"))
			return
		}
		apperrors.Escrever(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) paraDTO(c *Cobranca, cfg *configfinanceira.ConfigFinanceira) CobrancaDTO {
	hoje := h.Agora()

	// Sugestão de encargos só faz sentido em aberto; paga mostra o que
	// foi pago e cancelada não cobra nada.
	var total float64
	switch c.Status {
	case StatusPago:
		total = c.ValorPago
	case StatusCancelado:
		total = 0
	default:
		total = CalcularTotalDevido(c, cfg, hoje)
	}

	return CobrancaDTO{
		ID:                             c.ID,
		AlunoID:                        c.AlunoID,
		Descricao:                      c.Descricao,
		Valor:                          c.Valor,
		DataVencimento:                 c.DataVencimento,
		Status:                         c.Status,
		StatusEfetivo:                  StatusEfetivo(c, hoje),
		TotalSugerido:                  total,
		DataPagamento:                  c.DataPagamento,
		ValorPago:                      c.ValorPago,
		MetodoPagamento:                c.MetodoPagamento,
		ReferenciaTransacao:            c.ReferenciaTransacao,
		DescontoIrmaosPercentual:       c.DescontoIrmaosPercentual,
		DescontoPontualidadePercentual: c.DescontoPontualidadePercentual,
	}
}
