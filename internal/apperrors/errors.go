// internal/apperrors/errors.go
package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ValidationError indica entrada malformada (valor não positivo,
// vencimento ausente, status desconhecido etc).
type ValidationError struct {
	Mensagem string
	Campos   map[string]string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Mensagem: msg}
}

func NewValidationErrorCampos(msg string, campos map[string]string) *ValidationError {
	return &ValidationError{Mensagem: msg, Campos: campos}
}

func (e *ValidationError) Error() string { return e.Mensagem }

// PreconditionError indica que o estado atual não permite a operação
// (cobrança já paga, matrícula ausente, solicitação já encerrada).
// Detalhes carrega dados estruturados para a UI montar a mensagem
// exata, ex.: {"alunosSemMatricula": 3}.
type PreconditionError struct {
	Mensagem string
	Detalhes map[string]interface{}
}

func NewPreconditionError(msg string) *PreconditionError {
	return &PreconditionError{Mensagem: msg}
}

func NewPreconditionErrorDetalhes(msg string, detalhes map[string]interface{}) *PreconditionError {
	return &PreconditionError{Mensagem: msg, Detalhes: detalhes}
}

func (e *PreconditionError) Error() string { return e.Mensagem }

// NotFoundError indica id inexistente (cobrança, matrícula, solicitação).
type NotFoundError struct {
	Mensagem string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{Mensagem: msg}
}

func (e *NotFoundError) Error() string { return e.Mensagem }

// ConflictError indica corrida detectada entre escritores concorrentes.
type ConflictError struct {
	Mensagem string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Mensagem: msg}
}

func (e *ConflictError) Error() string { return e.Mensagem }

type respostaErro struct {
	Erro     string                 `json:"erro"`
	Campos   map[string]string      `json:"campos,omitempty"`
	Detalhes map[string]interface{} `json:"detalhes,omitempty"`
}

// Escrever serializa o erro com o status HTTP da categoria.
// Erros fora da taxonomia viram 500 com mensagem genérica.
func Escrever(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var (
		val  *ValidationError
		pre  *PreconditionError
		nf   *NotFoundError
		conf *ConflictError
	)
	switch {
	case errors.As(err, &val):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(respostaErro{Erro: val.Mensagem, Campos: val.Campos})
	case errors.As(err, &pre):
		w.WriteHeader(http.StatusPreconditionFailed)
		_ = json.NewEncoder(w).Encode(respostaErro{Erro: pre.Mensagem, Detalhes: pre.Detalhes})
	case errors.As(err, &nf):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(respostaErro{Erro: nf.Mensagem})
	case errors.As(err, &conf):
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(respostaErro{Erro: conf.Mensagem})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(respostaErro{Erro: "Erro interno"})
	}
}
