package listingservice_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
	"serenity/internal/service/listingservice"
)

// MockListingRepository é uma implementação mock da interface ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Load(ctx domain.Context) ([]domain.PropertyRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PropertyRecord), args.Error(1)
}

// sampleRecords gera n registros determinísticos para os testes.
func sampleRecords(n int) []domain.PropertyRecord {
	records := make([]domain.PropertyRecord, n)
	for i := range records {
		records[i] = domain.PropertyRecord{
			ID:          fmt.Sprintf("prop-%06d", i+1),
			Address:     fmt.Sprintf("Rua %d", i+1),
			Building:    fmt.Sprintf("Ed. %d", (i%3)+1),
			Complement:  fmt.Sprintf("Apto %d", i+1),
			Inscription: fmt.Sprintf("INS-%04d", i+1),
		}
	}
	return records
}

// TestComputeView_NoFilters_ReturnsAllPaginated verifica que sem filtros a view é
// exatamente o conjunto original paginado.
func TestComputeView_NoFilters_ReturnsAllPaginated(t *testing.T) {
	records := sampleRecords(7)

	view := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", 1, 3)

	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 7, view.TotalItems)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, records[:3], view.Items)

	last := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", 3, 3)
	assert.Equal(t, records[6:], last.Items)
}

// TestComputeView_PagesPartitionFilteredSet verifica a propriedade de particionamento:
// a soma dos tamanhos das páginas é o total filtrado e nenhuma página excede o pageSize.
func TestComputeView_PagesPartitionFilteredSet(t *testing.T) {
	records := sampleRecords(23)

	for _, pageSize := range []int{1, 4, 7, 23, 50} {
		first := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", 1, pageSize)

		total := 0
		for page := 1; page <= first.TotalPages; page++ {
			view := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", page, pageSize)
			assert.LessOrEqual(t, len(view.Items), pageSize)
			total += len(view.Items)
		}
		assert.Equal(t, first.TotalItems, total, "pageSize %d deve particionar o conjunto", pageSize)
	}
}

// TestComputeView_CaseInsensitiveSubstring cobre o cenário de busca por substring
// insensível a maiúsculas no campo selecionado.
func TestComputeView_CaseInsensitiveSubstring(t *testing.T) {
	records := []domain.PropertyRecord{
		{ID: "1", Address: "Rua A", Building: "B1"},
		{ID: "2", Address: "Rua B", Building: "B2"},
	}

	view := listingservice.ComputeView(records, "rua a", domain.SearchFieldAddress, "", 1, 50)

	assert.Equal(t, 1, view.TotalItems)
	assert.Equal(t, "1", view.Items[0].ID)
}

// TestComputeView_MissingFieldNeverMatches verifica que campo vazio conta como
// string vazia (nunca gera pânico, nunca casa com termo não-vazio).
func TestComputeView_MissingFieldNeverMatches(t *testing.T) {
	records := []domain.PropertyRecord{
		{ID: "1", Address: "Rua A"}, // sem complemento
	}

	view := listingservice.ComputeView(records, "apto", domain.SearchFieldComplement, "", 1, 50)

	assert.Equal(t, 0, view.TotalItems)
	assert.Len(t, view.Items, 0)
	assert.Equal(t, 1, view.TotalPages)
}

// TestComputeView_BuildingFilterIsExact verifica a igualdade exata e sensível a
// maiúsculas do filtro de prédio.
func TestComputeView_BuildingFilterIsExact(t *testing.T) {
	records := []domain.PropertyRecord{
		{ID: "1", Address: "Rua A", Building: "Torre X"},
		{ID: "2", Address: "Rua B", Building: "torre x"},
		{ID: "3", Address: "Rua C", Building: "Torre X"},
	}

	view := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "Torre X", 1, 50)

	assert.Equal(t, 2, view.TotalItems)
	for _, item := range view.Items {
		assert.Equal(t, "Torre X", item.Building)
	}
}

// TestComputeView_CombinedFilters verifica a conjunção termo+prédio.
func TestComputeView_CombinedFilters(t *testing.T) {
	records := []domain.PropertyRecord{
		{ID: "1", Address: "Rua Sergipe", Building: "Torre X"},
		{ID: "2", Address: "Rua Sergipe", Building: "Torre Y"},
		{ID: "3", Address: "Av Higienópolis", Building: "Torre X"},
	}

	view := listingservice.ComputeView(records, "sergipe", domain.SearchFieldAddress, "Torre X", 1, 50)

	assert.Equal(t, 1, view.TotalItems)
	assert.Equal(t, "1", view.Items[0].ID)
}

// TestComputeView_PageClamping verifica que a página efetiva é sempre fixada em [1, totalPages].
func TestComputeView_PageClamping(t *testing.T) {
	records := sampleRecords(25) // 3 páginas de 10

	over := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", 999, 10)
	assert.Equal(t, 3, over.Page)
	assert.Equal(t, records[20:], over.Items)

	under := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", 0, 10)
	assert.Equal(t, 1, under.Page)

	negative := listingservice.ComputeView(records, "", domain.SearchFieldAddress, "", -5, 10)
	assert.Equal(t, 1, negative.Page)
}

// TestComputeView_EmptyRecords verifica o conjunto vazio: zero itens, uma página.
func TestComputeView_EmptyRecords(t *testing.T) {
	view := listingservice.ComputeView([]domain.PropertyRecord{}, "", domain.SearchFieldAddress, "", 1, 50)

	assert.Len(t, view.Items, 0)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 0, view.TotalItems)
}

// TestComputeView_WhitespaceTermIsLiteral verifica que termo só de espaços não
// sofre trim: é uma busca literal por espaço.
func TestComputeView_WhitespaceTermIsLiteral(t *testing.T) {
	records := []domain.PropertyRecord{
		{ID: "1", Address: "Rua A"},
		{ID: "2", Address: "SemEspaco"},
	}

	view := listingservice.ComputeView(records, " ", domain.SearchFieldAddress, "", 1, 50)

	// Apenas "Rua A" contém espaço.
	assert.Equal(t, 1, view.TotalItems)
	assert.Equal(t, "1", view.Items[0].ID)
}

// TestComputeView_Idempotent verifica que filtrar duas vezes produz o mesmo
// resultado que uma e que o conjunto de entrada não é mutado.
func TestComputeView_Idempotent(t *testing.T) {
	records := sampleRecords(12)
	snapshot := sampleRecords(12)

	first := listingservice.ComputeView(records, "rua 1", domain.SearchFieldAddress, "", 1, 50)
	second := listingservice.ComputeView(first.Items, "rua 1", domain.SearchFieldAddress, "", 1, 50)

	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.TotalItems, second.TotalItems)
	assert.Equal(t, snapshot, records, "o conjunto de entrada não pode ser mutado")
}

// TestListProperties_Success testa o fluxo completo do serviço com o repositório mockado.
func TestListProperties_Success(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockLogger := logger.NewLogger("debug")

	svc := listingservice.NewService(mockRepo, 50, mockLogger)

	records := sampleRecords(5)
	mockRepo.On("Load", mock.Anything).Return(records, nil)

	ctx := context.Background()
	view, err := svc.ListProperties(ctx, domain.ListingQuery{Page: 1})

	assert.NoError(t, err)
	assert.Equal(t, 5, view.TotalItems)
	assert.Equal(t, records, view.Items)
	mockRepo.AssertExpectations(t)
}

// TestListProperties_InvalidField testa a rejeição de campo fora do enum.
func TestListProperties_InvalidField(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockLogger := logger.NewLogger("debug")

	svc := listingservice.NewService(mockRepo, 50, mockLogger)

	ctx := context.Background()
	_, err := svc.ListProperties(ctx, domain.ListingQuery{SearchField: domain.SearchField("price"), Page: 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Load")
}

// TestListProperties_UpstreamErrorPropagates testa que falhas tipadas da fonte
// remota chegam intactas ao chamador.
func TestListProperties_UpstreamErrorPropagates(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockLogger := logger.NewLogger("debug")

	svc := listingservice.NewService(mockRepo, 50, mockLogger)

	upstreamErr := apperror.NewUpstreamError("não foi possível alcançar a fonte de imóveis", nil)
	mockRepo.On("Load", mock.Anything).Return([]domain.PropertyRecord{}, upstreamErr)

	ctx := context.Background()
	_, err := svc.ListProperties(ctx, domain.ListingQuery{Page: 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.UpstreamError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestListProperties_PageSizeSafeguard testa o limite máximo de itens por página.
func TestListProperties_PageSizeSafeguard(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockLogger := logger.NewLogger("debug")

	svc := listingservice.NewService(mockRepo, 50, mockLogger)

	records := sampleRecords(120)
	mockRepo.On("Load", mock.Anything).Return(records, nil)

	ctx := context.Background()
	view, err := svc.ListProperties(ctx, domain.ListingQuery{Page: 1, PageSize: 150}) // Tenta buscar 150 itens

	assert.NoError(t, err)
	assert.Len(t, view.Items, 100) // Ajustado para o teto de 100
	assert.Equal(t, 2, view.TotalPages)
	mockRepo.AssertExpectations(t)
}

// TestListProperties_DefaultPageSize testa que pageSize ausente usa o padrão do dashboard.
func TestListProperties_DefaultPageSize(t *testing.T) {
	mockRepo := new(MockListingRepository)
	mockLogger := logger.NewLogger("debug")

	svc := listingservice.NewService(mockRepo, 50, mockLogger)

	records := sampleRecords(60)
	mockRepo.On("Load", mock.Anything).Return(records, nil)

	ctx := context.Background()
	view, err := svc.ListProperties(ctx, domain.ListingQuery{Page: 1})

	assert.NoError(t, err)
	assert.Len(t, view.Items, 50)
	assert.Equal(t, 2, view.TotalPages)
	mockRepo.AssertExpectations(t)
}
