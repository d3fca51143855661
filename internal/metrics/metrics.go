package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CobrancasCriadas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cobrancas_criadas_total",
			Help: "Total de cobranças criadas",
		},
		[]string{"escola"},
	)

	PagamentosRegistrados = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagamentos_registrados_total",
			Help: "Total de baixas de pagamento registradas",
		},
		[]string{"escola"},
	)

	PagamentosDesfeitos = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagamentos_desfeitos_total",
			Help: "Total de baixas de pagamento desfeitas",
		},
		[]string{"escola"},
	)

	LotesFrequencia = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lotes_frequencia_total",
			Help: "Total de lotes de frequência salvos, por resultado (aceito/rejeitado)",
		},
		[]string{"escola", "resultado"},
	)

	UpgradesDecididos = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upgrades_decididos_total",
			Help: "Total de solicitações de upgrade decididas, por desfecho",
		},
		[]string{"escola", "desfecho"},
	)
)

// Init registra as métricas no registry padrão do Prometheus.
func Init() {
	prometheus.MustRegister(CobrancasCriadas)
	prometheus.MustRegister(PagamentosRegistrados)
	prometheus.MustRegister(PagamentosDesfeitos)
	prometheus.MustRegister(LotesFrequencia)
	prometheus.MustRegister(UpgradesDecididos)
}

// Handler expõe o endpoint /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
