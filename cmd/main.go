package main

import (
	"log"
	"net/http"
	"os"

	"github.com/EscolaViva/api-gestao/internal/assinatura"
	"github.com/EscolaViva/api-gestao/internal/auth"
	"github.com/EscolaViva/api-gestao/internal/cobranca"
	"github.com/EscolaViva/api-gestao/internal/configfinanceira"
	"github.com/EscolaViva/api-gestao/internal/fechamento"
	"github.com/EscolaViva/api-gestao/internal/frequencia"
	"github.com/EscolaViva/api-gestao/internal/matricula"
	"github.com/EscolaViva/api-gestao/internal/metrics"
	"github.com/EscolaViva/api-gestao/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Sem arquivo .env; usando variáveis de ambiente")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := configfinanceira.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := matricula.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := cobranca.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := frequencia.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}
	if err := assinatura.Migrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	metrics.Init()

	// Repositórios
	configRepo := configfinanceira.NewRepository(database)
	matriculaRepo := matricula.NewRepository(database)
	cobrancaRepo := cobranca.NewRepository(database)
	frequenciaRepo := frequencia.NewRepository(database, matriculaRepo)
	fechamentoRepo := fechamento.NewRepository(database)
	assinaturaRepo := assinatura.NewRepository(database)

	// Handlers
	configHandler := configfinanceira.NewHandler(configRepo)
	matriculaHandler := matricula.NewHandler(matriculaRepo)
	cobrancaHandler := cobranca.NewHandler(cobrancaRepo, configRepo, matriculaRepo)
	frequenciaHandler := frequencia.NewHandler(frequenciaRepo)
	fechamentoHandler := fechamento.NewHandler(fechamentoRepo)
	assinaturaHandler := assinatura.NewHandler(assinaturaRepo)

	// Router
	r := mux.NewRouter()
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de configuração financeira (escrita restrita à secretaria)
	api.Handle("/config-financeira",
		auth.RequirePerfil("secretaria", http.HandlerFunc(configHandler.Salvar))).Methods("PUT")
	api.HandleFunc("/config-financeira", configHandler.Buscar).Methods("GET")

	// Rotas de matrícula
	api.HandleFunc("/matriculas", matriculaHandler.Criar).Methods("POST")
	api.HandleFunc("/matriculas", matriculaHandler.Listar).Methods("GET")
	api.HandleFunc("/matriculas/{id}/status", matriculaHandler.AlterarStatus).Methods("PATCH")
	api.HandleFunc("/alunos/{id}/matricula-ativa", matriculaHandler.MatriculaAtivaDoAluno).Methods("GET")

	// Rotas de cobrança
	api.HandleFunc("/cobrancas", cobrancaHandler.Criar).Methods("POST")
	api.HandleFunc("/cobrancas", cobrancaHandler.Listar).Methods("GET")
	api.HandleFunc("/cobrancas/{id}", cobrancaHandler.Buscar).Methods("GET")
	api.HandleFunc("/cobrancas/{id}", cobrancaHandler.Excluir).Methods("DELETE")
	api.HandleFunc("/cobrancas/{id}/pagamento", cobrancaHandler.MarcarPaga).Methods("POST")
	api.HandleFunc("/cobrancas/{id}/pagamento", cobrancaHandler.DesfazerPagamento).Methods("DELETE")
	api.HandleFunc("/cobrancas/{id}/cancelamento", cobrancaHandler.Cancelar).Methods("POST")

	// Rotas de frequência
	api.HandleFunc("/turmas/{id}/frequencia/{data}", frequenciaHandler.SalvarLote).Methods("PUT")
	api.HandleFunc("/turmas/{id}/frequencia/{data}", frequenciaHandler.BuscarLote).Methods("GET")

	// Rotas do fechamento mensal
	api.HandleFunc("/fechamentos", fechamentoHandler.Listar).Methods("GET")
	api.HandleFunc("/fechamentos/{competencia}", fechamentoHandler.Buscar).Methods("GET")

	// Rotas de assinatura e upgrade
	api.HandleFunc("/assinatura", assinaturaHandler.Buscar).Methods("GET")
	api.HandleFunc("/solicitacoes-upgrade", assinaturaHandler.CriarSolicitacao).Methods("POST")
	api.HandleFunc("/solicitacoes-upgrade", assinaturaHandler.ListarSolicitacoes).Methods("GET")
	api.Handle("/solicitacoes-upgrade/{id}/aprovacao",
		auth.RequirePerfil("operacao", http.HandlerFunc(assinaturaHandler.Aprovar))).Methods("POST")
	api.Handle("/solicitacoes-upgrade/{id}/recusa",
		auth.RequirePerfil("operacao", http.HandlerFunc(assinaturaHandler.Recusar))).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	log.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
