package adminservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
	"serenity/internal/service/adminservice"
)

// memoryRepo é um repositório em memória para exercitar os fluxos completos.
type memoryRepo struct {
	emails    []string
	buildings []domain.Building
}

func (m *memoryRepo) GetEmails(ctx context.Context) ([]string, error) {
	return append([]string{}, m.emails...), nil
}

func (m *memoryRepo) SaveEmails(ctx context.Context, emails []string) error {
	m.emails = emails
	return nil
}

func (m *memoryRepo) GetBuildings(ctx context.Context) ([]domain.Building, error) {
	return append([]domain.Building{}, m.buildings...), nil
}

func (m *memoryRepo) SaveBuildings(ctx context.Context, buildings []domain.Building) error {
	m.buildings = buildings
	return nil
}

// MockAdminListRepository é uma implementação mock para os caminhos de erro.
type MockAdminListRepository struct {
	mock.Mock
}

func (m *MockAdminListRepository) GetEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAdminListRepository) SaveEmails(ctx context.Context, emails []string) error {
	args := m.Called(ctx, emails)
	return args.Error(0)
}

func (m *MockAdminListRepository) GetBuildings(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Building), args.Error(1)
}

func (m *MockAdminListRepository) SaveBuildings(ctx context.Context, buildings []domain.Building) error {
	args := m.Called(ctx, buildings)
	return args.Error(0)
}

// TestAddEmail_Success testa a adição de um email válido.
func TestAddEmail_Success(t *testing.T) {
	repo := &memoryRepo{}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.AddEmail(ctx, "corretor@serenity.com.br")

	assert.NoError(t, err)
	assert.Equal(t, []string{"corretor@serenity.com.br"}, repo.emails)
}

// TestAddEmail_Empty_RejectsAndLeavesStoreUnchanged testa que email vazio é
// rejeitado com ValidationError e a lista permanece intacta.
func TestAddEmail_Empty_RejectsAndLeavesStoreUnchanged(t *testing.T) {
	repo := &memoryRepo{emails: []string{"a@b.com"}}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.AddEmail(ctx, "")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Equal(t, []string{"a@b.com"}, repo.emails)
}

// TestAddEmail_Duplicate_Conflict testa a unicidade da lista de autorizados.
func TestAddEmail_Duplicate_Conflict(t *testing.T) {
	repo := &memoryRepo{emails: []string{"a@b.com"}}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.AddEmail(ctx, "a@b.com")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Equal(t, []string{"a@b.com"}, repo.emails)
}

// TestRemoveEmail_Success testa a remoção por igualdade exata.
func TestRemoveEmail_Success(t *testing.T) {
	repo := &memoryRepo{emails: []string{"a@b.com", "c@d.com"}}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.RemoveEmail(ctx, "a@b.com")

	assert.NoError(t, err)
	assert.Equal(t, []string{"c@d.com"}, repo.emails)
}

// TestRemoveEmail_NotFound testa a remoção de email ausente.
func TestRemoveEmail_NotFound(t *testing.T) {
	repo := &memoryRepo{emails: []string{"a@b.com"}}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.RemoveEmail(ctx, "x@y.com")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Equal(t, []string{"a@b.com"}, repo.emails)
}

// TestBuilding_AddThenRemoveByName_EmptiesStore cobre o cenário de ida e volta:
// adicionar um prédio e removê-lo pelo nome deixa a lista (e o store) vazios.
func TestBuilding_AddThenRemoveByName_EmptiesStore(t *testing.T) {
	repo := &memoryRepo{}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.AddBuilding(ctx, domain.Building{Name: "Torre X", Address: "Av 1"})
	assert.NoError(t, err)
	assert.Len(t, repo.buildings, 1)

	err = svc.RemoveBuilding(ctx, "Torre X")
	assert.NoError(t, err)

	buildings, err := svc.ListBuildings(ctx)
	assert.NoError(t, err)
	assert.Len(t, buildings, 0)
	assert.Len(t, repo.buildings, 0)
}

// TestAddBuilding_MissingFields_Rejected testa a validação de nome e endereço.
func TestAddBuilding_MissingFields_Rejected(t *testing.T) {
	repo := &memoryRepo{}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()

	err := svc.AddBuilding(ctx, domain.Building{Name: "", Address: "Av 1"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	err = svc.AddBuilding(ctx, domain.Building{Name: "Torre X", Address: ""})
	assert.IsType(t, &apperror.ValidationError{}, err)

	assert.Len(t, repo.buildings, 0)
}

// TestRemoveBuilding_SharedName_RemovesAll documenta a limitação: dois prédios
// com o mesmo nome são ambos removidos por uma única chamada.
func TestRemoveBuilding_SharedName_RemovesAll(t *testing.T) {
	repo := &memoryRepo{buildings: []domain.Building{
		{Name: "Torre X", Address: "Av 1"},
		{Name: "Torre X", Address: "Av 2"},
		{Name: "Torre Y", Address: "Av 3"},
	}}
	svc := adminservice.NewService(repo, logger.NewLogger("debug"))

	ctx := context.Background()
	err := svc.RemoveBuilding(ctx, "Torre X")

	assert.NoError(t, err)
	assert.Equal(t, []domain.Building{{Name: "Torre Y", Address: "Av 3"}}, repo.buildings)
}

// TestAddEmail_Fail_RepoError testa a tradução de erro genérico do repositório.
func TestAddEmail_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockAdminListRepository)
	svc := adminservice.NewService(mockRepo, logger.NewLogger("debug"))

	repoError := errors.New("database connection lost")
	mockRepo.On("GetEmails", mock.Anything).Return([]string{}, repoError)

	ctx := context.Background()
	err := svc.AddEmail(ctx, "a@b.com")

	assert.Error(t, err)
	assert.IsType(t, &apperror.InternalError{}, err)
	mockRepo.AssertNotCalled(t, "SaveEmails")
	mockRepo.AssertExpectations(t)
}
