package domain

// Building representa um prédio completo cadastrado pelo administrador.
// É distinto do campo `building` dos registros: serve apenas como valor de filtro do dashboard.
// A identidade é o Name (a remoção é por igualdade exata de nome).
type Building struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AdminListService define o contrato de lógica de negócio das listas administrativas
// (emails autorizados e prédios completos).
type AdminListService interface {
	ListEmails(ctx Context) ([]string, error)
	AddEmail(ctx Context, email string) error
	RemoveEmail(ctx Context, email string) error

	ListBuildings(ctx Context) ([]Building, error)
	AddBuilding(ctx Context, building Building) error
	RemoveBuilding(ctx Context, name string) error
}
