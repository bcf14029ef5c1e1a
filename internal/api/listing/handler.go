package listing

import (
	"encoding/json"
	"net/http"
	"strconv"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
)

// ListingService define o contrato que o Handler espera do view-model de listagem.
type ListingService interface {
	ListProperties(ctx domain.Context, query domain.ListingQuery) (domain.PageView, error)
}

// Handler agrupa os métodos de Handler do dashboard de imóveis.
type Handler struct {
	Service ListingService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ListingService, log logger.Logger) *Handler {
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
		h.Logger.Error("Erro interno no serviço de listagem:", err)
	} else {
		h.Logger.Debug("Requisição de listagem rejeitada.", map[string]interface{}{"path": r.URL.Path, "category": category})
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

// ListPropertiesHandler lida com a requisição GET /v1/properties (rota protegida).
// @Summary Lista a página visível do dashboard de imóveis
// @Description Aplica busca por substring (insensível a maiúsculas) no campo selecionado, filtro exato de prédio e paginação sobre o conjunto completo de registros.
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param search query string false "Termo de busca (substring, sem trim)"
// @Param field query string false "Campo de busca: address, building, complement ou inscription" default(address)
// @Param building query string false "Filtro exato de prédio completo"
// @Param page query int false "Página corrente (fixada em [1, total_pages])" default(1)
// @Param page_size query int false "Itens por página (máx. 100)" default(50)
// @Success 200 {object} domain.PageView "Página filtrada e metadados de paginação"
// @Failure 400 {object} domain.ErrorResponse "Campo de busca inválido"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou inválida"
// @Failure 502 {object} domain.ErrorResponse "Fonte remota indisponível ou malformada"
// @Router /v1/properties [get]
func (h *Handler) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	params := r.URL.Query()

	query := domain.ListingQuery{
		SearchTerm: params.Get("search"),
		Building:   params.Get("building"),
	}

	// O campo de busca é um enum fechado: valor fora do enum é rejeitado,
	// ausência usa o padrão (address).
	if rawField := params.Get("field"); rawField != "" {
		field, ok := domain.ParseSearchField(rawField)
		if !ok {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Campo de busca inválido. Use address, building, complement ou inscription."), http.StatusOK)
			return
		}
		query.SearchField = field
	}

	if rawPage := params.Get("page"); rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O parâmetro page deve ser um número inteiro."), http.StatusOK)
			return
		}
		query.Page = page
	}

	if rawSize := params.Get("page_size"); rawSize != "" {
		size, err := strconv.Atoi(rawSize)
		if err != nil {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O parâmetro page_size deve ser um número inteiro."), http.StatusOK)
			return
		}
		query.PageSize = size
	}

	view, err := h.Service.ListProperties(ctx, query)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, view, nil, http.StatusOK)
}
