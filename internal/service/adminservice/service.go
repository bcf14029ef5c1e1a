package adminservice

import (
	"context"
	"fmt"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
)

// AdminListRepository define o contrato que este Serviço espera da camada de
// Persistência (armazenamento durável chave-valor).
type AdminListRepository interface {
	GetEmails(ctx context.Context) ([]string, error)
	SaveEmails(ctx context.Context, emails []string) error
	GetBuildings(ctx context.Context) ([]domain.Building, error)
	SaveBuildings(ctx context.Context, buildings []domain.Building) error
}

// Service é a estrutura que implementa a interface domain.AdminListService.
// Cada mutação valida a entrada ANTES de qualquer escrita: entrada inválida
// rejeita a operação e deixa o armazenamento intocado.
type Service struct {
	repo   AdminListRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço das listas administrativas.
func NewService(repo AdminListRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// --- Emails Autorizados ---

// ListEmails retorna a sequência ordenada de emails autorizados.
func (s *Service) ListEmails(ctx domain.Context) ([]string, error) {
	ctxGo := asContext(ctx)

	emails, err := s.repo.GetEmails(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao ler a lista de emails autorizados.", err)
		return nil, apperror.NewInternalError("Falha interna ao ler emails autorizados.", err)
	}
	return emails, nil
}

// AddEmail acrescenta um email à lista de autorizados.
// Emails duplicados são rejeitados: a unicidade é regra de negócio aqui,
// já que a lista alimenta a verificação exata do gate de login.
func (s *Service) AddEmail(ctx domain.Context, email string) error {
	if email == "" {
		return apperror.NewValidationError("O email não pode ser vazio.")
	}

	ctxGo := asContext(ctx)

	emails, err := s.repo.GetEmails(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao ler a lista de emails autorizados.", err)
		return apperror.NewInternalError("Falha interna ao ler emails autorizados.", err)
	}

	for _, existing := range emails {
		if existing == email {
			return apperror.NewConflictError(fmt.Sprintf("O email '%s' já está autorizado.", email))
		}
	}

	if err := s.repo.SaveEmails(ctxGo, append(emails, email)); err != nil {
		s.logger.Error("Falha ao persistir a lista de emails autorizados.", err)
		return apperror.NewInternalError("Falha interna ao salvar emails autorizados.", err)
	}

	s.logger.Info("Email autorizado adicionado.", map[string]interface{}{"email": email})
	return nil
}

// RemoveEmail retira um email da lista de autorizados (igualdade exata).
func (s *Service) RemoveEmail(ctx domain.Context, email string) error {
	if email == "" {
		return apperror.NewValidationError("O email não pode ser vazio.")
	}

	ctxGo := asContext(ctx)

	emails, err := s.repo.GetEmails(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao ler a lista de emails autorizados.", err)
		return apperror.NewInternalError("Falha interna ao ler emails autorizados.", err)
	}

	remaining := make([]string, 0, len(emails))
	for _, existing := range emails {
		if existing != email {
			remaining = append(remaining, existing)
		}
	}

	if len(remaining) == len(emails) {
		return apperror.NewNotFoundError(fmt.Sprintf("O email '%s' não está na lista de autorizados.", email))
	}

	if err := s.repo.SaveEmails(ctxGo, remaining); err != nil {
		s.logger.Error("Falha ao persistir a lista de emails autorizados.", err)
		return apperror.NewInternalError("Falha interna ao salvar emails autorizados.", err)
	}

	s.logger.Info("Email autorizado removido.", map[string]interface{}{"email": email})
	return nil
}

// --- Prédios Completos ---

// ListBuildings retorna a sequência ordenada de prédios completos.
func (s *Service) ListBuildings(ctx domain.Context) ([]domain.Building, error) {
	ctxGo := asContext(ctx)

	buildings, err := s.repo.GetBuildings(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao ler a lista de prédios completos.", err)
		return nil, apperror.NewInternalError("Falha interna ao ler prédios completos.", err)
	}
	return buildings, nil
}

// AddBuilding acrescenta um prédio à lista. Nome e endereço são obrigatórios.
// Nomes duplicados são permitidos (comportamento da origem); ver RemoveBuilding.
func (s *Service) AddBuilding(ctx domain.Context, building domain.Building) error {
	if building.Name == "" || building.Address == "" {
		return apperror.NewValidationError("Nome e endereço do prédio são obrigatórios.")
	}

	ctxGo := asContext(ctx)

	buildings, err := s.repo.GetBuildings(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao ler a lista de prédios completos.", err)
		return apperror.NewInternalError("Falha interna ao ler prédios completos.", err)
	}

	if err := s.repo.SaveBuildings(ctxGo, append(buildings, building)); err != nil {
		s.logger.Error("Falha ao persistir a lista de prédios completos.", err)
		return apperror.NewInternalError("Falha interna ao salvar prédios completos.", err)
	}

	s.logger.Info("Prédio completo adicionado.", map[string]interface{}{"name": building.Name})
	return nil
}

// RemoveBuilding retira prédios da lista pelo nome (igualdade exata).
// Limitação documentada: a identidade do prédio é só o nome, então dois
// prédios com o mesmo nome são ambos removidos por uma única chamada.
func (s *Service) RemoveBuilding(ctx domain.Context, name string) error {
	if name == "" {
		return apperror.NewValidationError("O nome do prédio não pode ser vazio.")
	}

	ctxGo := asContext(ctx)

	buildings, err := s.repo.GetBuildings(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao ler a lista de prédios completos.", err)
		return apperror.NewInternalError("Falha interna ao ler prédios completos.", err)
	}

	remaining := make([]domain.Building, 0, len(buildings))
	for _, existing := range buildings {
		if existing.Name != name {
			remaining = append(remaining, existing)
		}
	}

	if len(remaining) == len(buildings) {
		return apperror.NewNotFoundError(fmt.Sprintf("O prédio '%s' não está na lista.", name))
	}

	if err := s.repo.SaveBuildings(ctxGo, remaining); err != nil {
		s.logger.Error("Falha ao persistir a lista de prédios completos.", err)
		return apperror.NewInternalError("Falha interna ao salvar prédios completos.", err)
	}

	s.logger.Info("Prédio completo removido.", map[string]interface{}{"name": name, "removed": len(buildings) - len(remaining)})
	return nil
}

// asContext converte o domain.Context abstrato para o context.Context nativo.
func asContext(ctx domain.Context) context.Context {
	if ctxGo, ok := ctx.(context.Context); ok {
		return ctxGo
	}
	return context.Background()
}
