// internal/frequencia/dto.go
package frequencia

type EntradaLoteDTO struct {
	AlunoID       uint   `json:"alunoId" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=presente falta justificada"`
	Justificativa string `json:"justificativa"`
}

type SalvarLoteDTO struct {
	Entradas []EntradaLoteDTO `json:"entradas" validate:"required,min=1,dive"`
}
