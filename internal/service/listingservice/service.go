package listingservice

import (
	"context"
	"strings"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
)

// Limite superior de itens por página, independente do que o cliente pedir.
const maxPageSize = 100

// ListingRepository define o contrato que este Serviço espera da camada de
// Persistência (fonte remota + cache de sessão).
type ListingRepository interface {
	Load(ctx domain.Context) ([]domain.PropertyRecord, error)
}

// Service é a estrutura que implementa a interface domain.ListingService.
type Service struct {
	repo            ListingRepository
	defaultPageSize int
	logger          logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Listagem.
func NewService(repo ListingRepository, defaultPageSize int, log logger.Logger) *Service {
	if defaultPageSize < 1 {
		defaultPageSize = 50
	}
	return &Service{repo: repo, defaultPageSize: defaultPageSize, logger: log}
}

// ListProperties carrega o conjunto de registros e computa a página visível.
// Deve ser reinvocado a cada mudança de entrada: o resultado nunca é retido.
func (s *Service) ListProperties(ctx domain.Context, query domain.ListingQuery) (domain.PageView, error) {
	s.logger.Debug("Computando view de listagem.", map[string]interface{}{
		"search_term": query.SearchTerm,
		"field":       string(query.SearchField),
		"building":    query.Building,
		"page":        query.Page,
	})

	// 1. Normalização dos parâmetros de entrada
	if query.SearchField == "" {
		query.SearchField = domain.SearchFieldAddress
	}
	if _, ok := domain.ParseSearchField(string(query.SearchField)); !ok {
		return domain.PageView{}, apperror.NewValidationError("Campo de busca inválido. Use address, building, complement ou inscription.")
	}
	if query.PageSize < 1 {
		query.PageSize = s.defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
	}

	// 2. Carregamento do conjunto completo (cache de sessão ou fonte remota)
	records, err := s.repo.Load(ctxGo)
	if err != nil {
		// Erros do repositório já são UpstreamError/ParseError tipados.
		if _, isApp := err.(apperror.AppError); isApp {
			return domain.PageView{}, err
		}
		s.logger.Error("Falha ao carregar registros no repositório.", err)
		return domain.PageView{}, apperror.NewInternalError("Falha interna ao carregar os imóveis.", err)
	}

	// 3. Filtro + paginação (função pura)
	view := ComputeView(records, query.SearchTerm, query.SearchField, query.Building, query.Page, query.PageSize)
	return view, nil
}

// ComputeView é o coração do dashboard: dado o conjunto completo de registros,
// um termo de busca, o campo selecionado, um filtro opcional de prédio e a
// página corrente, produz a página filtrada e os metadados de paginação.
//
// É uma função pura e determinística: nenhum registro é mutado e entradas
// idênticas produzem saídas idênticas. Complexidade O(n) no total de registros.
//
// Regras do filtro:
//   - termo vazio aceita tudo; caso contrário a comparação é substring
//     insensível a maiúsculas sobre o campo selecionado (campo ausente conta
//     como string vazia). O termo NÃO sofre trim: um termo só de espaços é
//     tratado como busca literal.
//   - prédio vazio aceita tudo; caso contrário a igualdade é exata e
//     sensível a maiúsculas contra o campo building do registro.
//
// Paginação: totalPages = ceil(n/pageSize), mínimo 1 mesmo com zero
// resultados; a página corrente é sempre fixada em [1, totalPages].
func ComputeView(records []domain.PropertyRecord, searchTerm string, field domain.SearchField, selectedBuilding string, currentPage, pageSize int) domain.PageView {
	if pageSize < 1 {
		pageSize = 1
	}

	term := strings.ToLower(searchTerm)

	filtered := make([]domain.PropertyRecord, 0, len(records))
	for _, rec := range records {
		if searchTerm != "" && !strings.Contains(strings.ToLower(field.Value(rec)), term) {
			continue
		}
		if selectedBuilding != "" && rec.Building != selectedBuilding {
			continue
		}
		filtered = append(filtered, rec)
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := currentPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.PageView{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: len(filtered),
	}
}
