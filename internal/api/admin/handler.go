package admin

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
)

// AdminListService define o contrato que o Handler espera do gerenciador de
// listas administrativas.
type AdminListService interface {
	ListEmails(ctx domain.Context) ([]string, error)
	AddEmail(ctx domain.Context, email string) error
	RemoveEmail(ctx domain.Context, email string) error

	ListBuildings(ctx domain.Context) ([]domain.Building, error)
	AddBuilding(ctx domain.Context, building domain.Building) error
	RemoveBuilding(ctx domain.Context, name string) error
}

// EmailRequest representa o payload de entrada para adicionar um email autorizado.
type EmailRequest struct {
	Email string `json:"email"`
}

// Handler agrupa os métodos de Handler do painel administrativo.
type Handler struct {
	Service AdminListService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AdminListService, log logger.Logger) *Handler {
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

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro interno no painel administrativo:", err)
	} else {
		h.Logger.Debug("Requisição administrativa rejeitada.", map[string]interface{}{"path": r.URL.Path, "category": category})
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

// EmailsHandler lida com GET e POST em /v1/admin/emails (rota de administrador).
// @Summary Lista ou adiciona emails autorizados
// @Description GET retorna a sequência de emails autorizados; POST adiciona um email (não-vazio, sem duplicatas).
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email body EmailRequest false "Email a autorizar (apenas POST)"
// @Success 200 {array} string "Lista de emails autorizados"
// @Success 201 "Email adicionado"
// @Failure 400 {object} domain.ErrorResponse "Email vazio"
// @Failure 403 {object} domain.ErrorResponse "Acesso restrito ao administrador"
// @Failure 409 {object} domain.ErrorResponse "Email já autorizado"
// @Router /v1/admin/emails [get]
func (h *Handler) EmailsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		emails, err := h.Service.ListEmails(ctx)
		h.handleServiceResponse(w, r, emails, err, http.StatusOK)

	case http.MethodPost:
		var req EmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
			return
		}
		err := h.Service.AddEmail(ctx, req.Email)
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// EmailItemHandler lida com DELETE em /v1/admin/emails/{email} (rota de administrador).
// @Summary Remove um email autorizado
// @Description Remove o email da lista de autorizados por igualdade exata.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email a remover (URL-encoded)"
// @Success 204 "Email removido"
// @Failure 404 {object} domain.ErrorResponse "Email não está na lista"
// @Router /v1/admin/emails/{email} [delete]
func (h *Handler) EmailItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	email, err := pathSuffix(r.URL.Path, "/v1/admin/emails/")
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Email inválido na rota."), http.StatusNoContent)
		return
	}

	err = h.Service.RemoveEmail(r.Context(), email)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// BuildingsHandler lida com GET e POST em /v1/admin/buildings (rota de administrador).
// @Summary Lista ou adiciona prédios completos
// @Description GET retorna a sequência de prédios completos; POST adiciona um prédio (nome e endereço obrigatórios).
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param building body domain.Building false "Prédio a adicionar (apenas POST)"
// @Success 200 {array} domain.Building "Lista de prédios completos"
// @Success 201 "Prédio adicionado"
// @Failure 400 {object} domain.ErrorResponse "Nome ou endereço vazios"
// @Failure 403 {object} domain.ErrorResponse "Acesso restrito ao administrador"
// @Router /v1/admin/buildings [get]
func (h *Handler) BuildingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		buildings, err := h.Service.ListBuildings(ctx)
		h.handleServiceResponse(w, r, buildings, err, http.StatusOK)

	case http.MethodPost:
		var building domain.Building
		if err := json.NewDecoder(r.Body).Decode(&building); err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
			return
		}
		err := h.Service.AddBuilding(ctx, building)
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// BuildingItemHandler lida com DELETE em /v1/admin/buildings/{name} (rota de administrador).
// @Summary Remove prédios completos pelo nome
// @Description A identidade do prédio é o nome: todos os prédios com o nome informado são removidos pela mesma chamada (limitação documentada).
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Nome do prédio (URL-encoded)"
// @Success 204 "Prédio(s) removido(s)"
// @Failure 404 {object} domain.ErrorResponse "Prédio não está na lista"
// @Router /v1/admin/buildings/{name} [delete]
func (h *Handler) BuildingItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	name, err := pathSuffix(r.URL.Path, "/v1/admin/buildings/")
	if err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Nome de prédio inválido na rota."), http.StatusNoContent)
		return
	}

	err = h.Service.RemoveBuilding(r.Context(), name)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// pathSuffix extrai e decodifica o identificador ao final da rota.
func pathSuffix(path, prefix string) (string, error) {
	raw := strings.TrimPrefix(path, prefix)
	return url.PathUnescape(raw)
}
