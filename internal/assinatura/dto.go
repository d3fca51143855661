// internal/assinatura/dto.go
package assinatura

type CriarSolicitacaoDTO struct {
	LimiteSolicitado int     `json:"limiteSolicitado" validate:"required,min=1"`
	ValorProposto    float64 `json:"valorProposto" validate:"required,gt=0"`
}

type AprovarSolicitacaoDTO struct {
	// Permite a operação ajustar limite/preço na aprovação; zero usa o
	// que foi solicitado/proposto.
	NovoLimite int     `json:"novoLimite" validate:"min=0"`
	NovoValor  float64 `json:"novoValor" validate:"min=0"`
}
