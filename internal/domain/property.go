package domain

// PropertyRecord representa uma inscrição imobiliária da base de captação (a Entidade).
// Os registros são imutáveis após o carregamento: a fonte remota é somente leitura.
type PropertyRecord struct {
	// ID é sintético, atribuído pela posição no carregamento (a fonte não possui chave estável).
	ID          string `json:"id"`
	Address     string `json:"address"`
	Building    string `json:"building"`
	Complement  string `json:"complement"`
	Inscription string `json:"inscription"`
}

// SearchField é o enum fechado dos campos pesquisáveis do dashboard.
// Evita indexação dinâmica por string: cada campo tem um acessor explícito.
type SearchField string

const (
	SearchFieldAddress     SearchField = "address"
	SearchFieldBuilding    SearchField = "building"
	SearchFieldComplement  SearchField = "complement"
	SearchFieldInscription SearchField = "inscription"
)

// ParseSearchField valida e converte o valor vindo da query string.
// Retorna false para qualquer campo fora do enum.
func ParseSearchField(s string) (SearchField, bool) {
	switch SearchField(s) {
	case SearchFieldAddress, SearchFieldBuilding, SearchFieldComplement, SearchFieldInscription:
		return SearchField(s), true
	}
	return "", false
}

// Value retorna o valor do campo selecionado no registro.
// Campo desconhecido retorna string vazia (nunca gera pânico).
func (f SearchField) Value(r PropertyRecord) string {
	switch f {
	case SearchFieldAddress:
		return r.Address
	case SearchFieldBuilding:
		return r.Building
	case SearchFieldComplement:
		return r.Complement
	case SearchFieldInscription:
		return r.Inscription
	}
	return ""
}

// ListingQuery define os parâmetros de busca, filtro e paginação do dashboard.
type ListingQuery struct {
	SearchTerm  string
	SearchField SearchField
	// Building filtra por igualdade exata (sensível a maiúsculas); vazio = todos os prédios.
	Building string
	Page     int
	PageSize int
}

// PageView é o resultado do view-model: a página visível e os metadados de paginação.
type PageView struct {
	Items      []PropertyRecord `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalItems int              `json:"total_items"`
}

// --- Interfaces de Contrato ---

// ListingRepository é a interface que a camada de Repositório (fonte remota + cache) DEVE implementar.
type ListingRepository interface {
	Load(ctx Context) ([]PropertyRecord, error)
}

// ListingService é a interface que a camada de Serviço DEVE implementar.
// Define o que o Handler (Camada API) pode pedir para o view-model fazer.
type ListingService interface {
	ListProperties(ctx Context, query ListingQuery) (PageView, error)
}

// Context é uma interface que encapsula o Go context.Context.
// É usado para propagar o timeout e sinais de cancelamento pelas camadas.
type Context interface{}
