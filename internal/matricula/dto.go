// internal/matricula/dto.go
package matricula

type CriarMatriculaDTO struct {
	AlunoID         uint    `json:"alunoId" validate:"required"`
	TurmaID         uint    `json:"turmaId" validate:"required"`
	Tipo            string  `json:"tipo" validate:"omitempty,oneof=nova rematricula"`
	AnoLetivo       int     `json:"anoLetivo" validate:"required,min=2000,max=2100"`
	Serie           string  `json:"serie"`
	Turno           string  `json:"turno"`
	ValorContratado float64 `json:"valorContratado" validate:"min=0"`
}

type AlterarStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=ativa concluida cancelada"`
}
