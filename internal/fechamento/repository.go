// internal/fechamento/repository.go
package fechamento

import (
	"math"

	"github.com/EscolaViva/api-gestao/internal/cobranca"
	"gorm.io/gorm"
)

// Repository agrega o razão de cobranças por competência. Só leitura,
// calculado na consulta; o volume de mutação de cobranças não justifica
// manter contadores incrementais.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Fechamentos devolve uma linha por competência da escola:
// previsto = soma dos valores das cobranças não canceladas do mês;
// recebido = soma dos valores pagos com status armazenado "pago";
// em aberto = previsto - recebido. Janela sem cobranças devolve lista
// vazia, não erro.
func (r *Repository) Fechamentos(escolaID uint, ano int) ([]LinhaFechamento, error) {
	q := r.DB.Model(&cobranca.Cobranca{}).
		Select(`to_char(data_vencimento, 'YYYY-MM') AS competencia,
			COALESCE(SUM(valor), 0) AS previsto,
			COALESCE(SUM(CASE WHEN status = ? THEN valor_pago ELSE 0 END), 0) AS recebido`,
			cobranca.StatusPago).
		Where("escola_id = ? AND status <> ?", escolaID, cobranca.StatusCancelado).
		Group("to_char(data_vencimento, 'YYYY-MM')").
		Order("competencia ASC")
	if ano != 0 {
		q = q.Where("EXTRACT(YEAR FROM data_vencimento) = ?", ano)
	}

	linhas := []LinhaFechamento{}
	if err := q.Scan(&linhas).Error; err != nil {
		return nil, err
	}
	for i := range linhas {
		linhas[i].EmAberto = arredondar(linhas[i].Previsto - linhas[i].Recebido)
		linhas[i].Previsto = arredondar(linhas[i].Previsto)
		linhas[i].Recebido = arredondar(linhas[i].Recebido)
	}
	return linhas, nil
}

// FechamentoDoMes devolve a linha de uma única competência ("AAAA-MM").
// Mês sem cobranças devolve a linha zerada.
func (r *Repository) FechamentoDoMes(escolaID uint, competencia string) (*LinhaFechamento, error) {
	var linha LinhaFechamento
	err := r.DB.Model(&cobranca.Cobranca{}).
		Select(`COALESCE(SUM(valor), 0) AS previsto,
			COALESCE(SUM(CASE WHEN status = ? THEN valor_pago ELSE 0 END), 0) AS recebido`,
			cobranca.StatusPago).
		Where("escola_id = ? AND status <> ?", escolaID, cobranca.StatusCancelado).
		Where("to_char(data_vencimento, 'YYYY-MM') = ?", competencia).
		Scan(&linha).Error
	if err != nil {
		return nil, err
	}
	linha.Competencia = competencia
	linha.EmAberto = arredondar(linha.Previsto - linha.Recebido)
	linha.Previsto = arredondar(linha.Previsto)
	linha.Recebido = arredondar(linha.Recebido)
	return &linha, nil
}

func arredondar(v float64) float64 {
	return math.Round(v*100) / 100
}
