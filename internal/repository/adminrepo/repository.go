package adminrepo

import (
	"context"
	"errors"

	"serenity/internal/domain"
	"serenity/internal/pkg/kvstore"
	"serenity/internal/pkg/logger"
)

// Chaves duráveis das duas listas administrativas.
// São sequências ordenadas serializadas como JSON, exatamente como o
// restante do armazenamento chave-valor.
const (
	authorizedEmailsKey  = "authorizedEmails"
	completeBuildingsKey = "completeBuildings"
)

// AdminListRepository persiste as duas listas administrativas
// (emails autorizados e prédios completos) no armazenamento durável.
// Cada mutação é uma única escrita síncrona da lista inteira: atômica do
// ponto de vista do chamador, sem proteção contra abas/escritores concorrentes.
type AdminListRepository struct {
	Store  kvstore.Store
	logger logger.Logger
}

// NewAdminListRepository cria uma nova instância do repositório, injetando o Store durável.
func NewAdminListRepository(store kvstore.Store, log logger.Logger) *AdminListRepository {
	return &AdminListRepository{
		Store:  store,
		logger: log,
	}
}

// GetEmails retorna a lista de emails autorizados. Chave ausente = lista vazia.
func (r *AdminListRepository) GetEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.Store.Get(ctx, authorizedEmailsKey, &emails)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return emails, nil
}

// SaveEmails grava a lista completa de emails autorizados em uma única escrita.
func (r *AdminListRepository) SaveEmails(ctx context.Context, emails []string) error {
	if err := r.Store.Set(ctx, authorizedEmailsKey, emails); err != nil {
		return err
	}
	r.logger.Debug("Lista de emails autorizados persistida.", map[string]interface{}{"count": len(emails)})
	return nil
}

// GetBuildings retorna a lista de prédios completos. Chave ausente = lista vazia.
func (r *AdminListRepository) GetBuildings(ctx context.Context) ([]domain.Building, error) {
	var buildings []domain.Building
	err := r.Store.Get(ctx, completeBuildingsKey, &buildings)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return []domain.Building{}, nil
		}
		return nil, err
	}
	return buildings, nil
}

// SaveBuildings grava a lista completa de prédios em uma única escrita.
func (r *AdminListRepository) SaveBuildings(ctx context.Context, buildings []domain.Building) error {
	if err := r.Store.Set(ctx, completeBuildingsKey, buildings); err != nil {
		return err
	}
	r.logger.Debug("Lista de prédios completos persistida.", map[string]interface{}{"count": len(buildings)})
	return nil
}
