package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"serenity/config"
	"serenity/internal/pkg/cache"
	"serenity/internal/pkg/database"
	"serenity/internal/pkg/kvstore"
	"serenity/internal/pkg/logger"
	"serenity/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"serenity/internal/api/admin"
	"serenity/internal/api/auth"
	"serenity/internal/api/listing"
	"serenity/internal/api/payment"
	"serenity/internal/api/router"
	"serenity/internal/repository/adminrepo"
	"serenity/internal/repository/propertyrepo"
	"serenity/internal/repository/sessionrepo"
	"serenity/internal/repository/userrepo"
	"serenity/internal/service/adminservice"
	"serenity/internal/service/authservice"
	"serenity/internal/service/listingservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço Serenity...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		// Se o arquivo .env não for encontrado, avisamos, mas continuamos, pois as
		// variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL) — armazenamento durável
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis) — armazenamento de escopo de sessão
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	appLog.Info("Conexão Redis estabelecida.", nil)

	// C. Armazenamento durável chave-valor (sobre o PostgreSQL)
	durableStore := kvstore.NewPostgresStore(db, cfg.DBTimeout, appLog)
	appLog.Debug("Armazenamento durável chave-valor inicializado.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios (Camada de Acesso a Dados)
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	propertyRepo := propertyrepo.NewPropertyRepository(httpClient, cacheClient, cfg.ListingsURL, cfg.ListingCacheTTL, appLog)
	adminRepo := adminrepo.NewAdminListRepository(durableStore, appLog)
	sessionRepo := sessionrepo.NewSessionRepository(durableStore, appLog)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	appLog.Debug("Repositórios inicializados.", nil)

	// B. Serviço de Tokens (JWT de sessão, sem expiração)
	tokenSvc := token.NewService(cfg.JWTSecretKey)
	appLog.Debug("Serviço de Tokens inicializado.", nil)

	// C. Serviços (Camada de Lógica de Negócio)
	listingSvc := listingservice.NewService(propertyRepo, cfg.PageSize, appLog)
	adminSvc := adminservice.NewService(adminRepo, appLog)
	authSvc := authservice.NewService(userRepo, adminRepo, sessionRepo, tokenSvc, cfg.AdminEmail, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// D. Handlers (Camada de Apresentação)
	authHandler := auth.NewHandler(authSvc, appLog)
	listingHandler := listing.NewHandler(listingSvc, appLog)
	adminHandler := admin.NewHandler(adminSvc, appLog)
	paymentHandler := payment.NewHandler(appLog)
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(
		authHandler,
		listingHandler,
		adminHandler,
		paymentHandler,
		tokenSvc,
		sessionRepo,
		cacheClient,
		cfg.RateLimitMaxRequests,
		cfg.RateLimitPeriod,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // a primeira listagem pode esperar a fonte remota
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor Serenity ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// Lógica do Graceful Shutdown (captura de sinal)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	// Timeout para desligamento (usa o contexto)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
