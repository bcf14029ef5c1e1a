package auth

import (
	"encoding/json"
	"net/http"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
	"serenity/internal/pkg/middleware"
)

// AuthService define o contrato que o Handler espera do gate de autenticação.
type AuthService interface {
	Register(ctx domain.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx domain.Context, email string, password string) (domain.Session, string, error)
	Logout(ctx domain.Context, sessionID string) error
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse representa o resultado do login: o token de portador e a rota
// para onde o cliente deve navegar (admin vai direto ao painel).
type LoginResponse struct {
	Token    string `json:"token"`
	IsAdmin  bool   `json:"is_admin"`
	Redirect string `json:"redirect"`
}

// Handler agrupa todos os métodos de Handler de autenticação.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse padroniza o tratamento de erros e respostas HTTP.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			json.NewEncoder(w).Encode(data)
		}
		return
	}

	// Mapeamento de Erros de Negócio para Status HTTP
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro interno no gate de autenticação:", err)
	} else {
		h.Logger.Debug("Requisição de autenticação rejeitada.", map[string]interface{}{"path": r.URL.Path, "category": category})
	}

	errorResponse := domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra uma nova identidade
// @Description Cria uma conta no provedor local (email + hash da senha). Registrar não autoriza: o acesso ao dashboard continua dependendo da lista de emails autorizados.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.User "Identidade criada com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	newUser, err := h.Service.Register(ctx, reg)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	// O hash da senha não aparece na resposta (tag json:"-" em domain.User).
	h.handleServiceResponse(w, r, newUser, nil, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário pelo gate de acesso
// @Description Verifica as credenciais no provedor de identidade E a presença do email na lista de autorizados; ambas precisam passar. No sucesso persiste a sessão durável e emite o token de portador.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} LoginResponse "Sessão criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas ou email não autorizado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	session, tokenString, err := h.Service.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	// Entrega de controle ao roteamento: admin vai direto ao painel.
	redirect := "/dashboard"
	if session.IsAdmin {
		redirect = "/admin"
	}

	response := LoginResponse{
		Token:    tokenString,
		IsAdmin:  session.IsAdmin,
		Redirect: redirect,
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// LogoutUserHandler lida com a requisição POST /v1/logout (rota protegida).
// @Summary Encerra a sessão
// @Description Destrói o estado de sessão durável; o token emitido no login deixa de resolver.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 204 "Sessão encerrada"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/logout [post]
func (h *Handler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	info, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusNoContent)
		return
	}

	if err := h.Service.Logout(ctx, info.SessionID); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	h.Logger.Info("Logout realizado.", map[string]interface{}{"email": info.UserEmail})
	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
