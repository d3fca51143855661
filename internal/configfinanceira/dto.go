// internal/configfinanceira/dto.go
package configfinanceira

type SalvarConfigDTO struct {
	DiaVencimento int `json:"diaVencimento" validate:"required,min=1,max=28"`
	DiasCarencia  int `json:"diasCarencia" validate:"min=0,max=60"`

	MultaPercentual       float64 `json:"multaPercentual" validate:"min=0,max=100"`
	MultaFixa             float64 `json:"multaFixa" validate:"min=0"`
	JurosMensalPercentual float64 `json:"jurosMensalPercentual" validate:"min=0,max=100"`

	DescontoIrmaosPercentual       float64 `json:"descontoIrmaosPercentual" validate:"min=0,max=100"`
	DescontoPontualidadePercentual float64 `json:"descontoPontualidadePercentual" validate:"min=0,max=100"`

	PixManual     bool `json:"pixManual"`
	PixAutomatico bool `json:"pixAutomatico"`

	MensalidadesPorTurma map[string]float64 `json:"mensalidadesPorTurma"`
}
