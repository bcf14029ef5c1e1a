package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"serenity/internal/api/admin"
	"serenity/internal/api/auth"
	"serenity/internal/api/listing"
	"serenity/internal/api/payment"
	"serenity/internal/pkg/cache"
	"serenity/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	authHandler *auth.Handler,
	listingHandler *listing.Handler,
	adminHandler *admin.Handler,
	paymentHandler *payment.Handler,
	tokenSvc middleware.TokenService,
	sessions middleware.SessionLookup,
	cacheClient cache.Client,
	rateLimitMax int,
	rateLimitPeriod time.Duration,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// Middleware de autenticação: valida o token E confirma a sessão durável.
	authRequired := middleware.NewAuthMiddleware(tokenSvc, sessions)

	// --- 1. Rotas de Health Check e Documentação ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- 2. Rotas públicas (v1) ---
	mux.HandleFunc("/v1/register", authHandler.RegisterUserHandler)
	mux.HandleFunc("/v1/login", authHandler.LoginUserHandler)
	mux.HandleFunc("/v1/payment/pix", paymentHandler.PixHandler)

	// --- 3. Rotas protegidas: exigem sessão válida ---
	mux.HandleFunc("/v1/logout", authRequired(authHandler.LogoutUserHandler))
	mux.HandleFunc("/v1/properties", authRequired(listingHandler.ListPropertiesHandler))

	// --- 4. Rotas de administrador: sessão válida + isAdmin ---
	mux.HandleFunc("/v1/admin/emails", authRequired(middleware.AdminOnly(adminHandler.EmailsHandler)))
	mux.HandleFunc("/v1/admin/emails/", authRequired(middleware.AdminOnly(adminHandler.EmailItemHandler)))
	mux.HandleFunc("/v1/admin/buildings", authRequired(middleware.AdminOnly(adminHandler.BuildingsHandler)))
	mux.HandleFunc("/v1/admin/buildings/", authRequired(middleware.AdminOnly(adminHandler.BuildingItemHandler)))

	// --- 5. Middlewares globais ---
	return middleware.RateLimiter(cacheClient, rateLimitMax, rateLimitPeriod)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
