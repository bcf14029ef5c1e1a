package propertyrepo_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/cache"
	"serenity/internal/pkg/logger"
	"serenity/internal/repository/propertyrepo"
)

const listingsURL = "https://example.test/imoveis.json"

// fakeHTTPClient conta as chamadas e devolve a resposta programada.
type fakeHTTPClient struct {
	calls    int
	response *http.Response
	err      error
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// memoryCache é um cache.Client em memória para os testes.
type memoryCache struct {
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (m *memoryCache) GetInt(ctx context.Context, key string) (int, error) {
	return 0, cache.ErrCacheMiss
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return nil
}

func (m *memoryCache) Incr(ctx context.Context, key string) error { return nil }

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newRepo(client *fakeHTTPClient, c cache.Client) *propertyrepo.PropertyRepository {
	return propertyrepo.NewPropertyRepository(client, c, listingsURL, 30*time.Minute, logger.NewLogger("debug"))
}

// TestLoad_CacheMiss_FetchesAndPopulates testa o primeiro carregamento da sessão:
// busca na fonte remota, atribui IDs sintéticos posicionais e popula o cache.
func TestLoad_CacheMiss_FetchesAndPopulates(t *testing.T) {
	client := &fakeHTTPClient{response: jsonResponse(http.StatusOK,
		`[{"address":"Rua A","building":"B1","complement":"Apto 1","inscription":"INS-1"},
		  {"address":"Rua B","building":"B2","complement":"Apto 2","inscription":"INS-2"}]`)}
	sessionCache := newMemoryCache()
	repo := newRepo(client, sessionCache)

	records, err := repo.Load(context.Background())

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "prop-000001", records[0].ID)
	assert.Equal(t, "prop-000002", records[1].ID)
	assert.Equal(t, "Rua A", records[0].Address)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, sessionCache.data, "propertiesData")
}

// TestLoad_CacheHit_NoNetworkAccess testa que um segundo Load na mesma sessão
// é servido do cache sem nenhum acesso à rede.
func TestLoad_CacheHit_NoNetworkAccess(t *testing.T) {
	client := &fakeHTTPClient{response: jsonResponse(http.StatusOK,
		`[{"address":"Rua A","building":"B1","complement":"","inscription":""}]`)}
	sessionCache := newMemoryCache()
	repo := newRepo(client, sessionCache)

	first, err := repo.Load(context.Background())
	assert.NoError(t, err)

	second, err := repo.Load(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls, "o cache de sessão deve evitar a segunda busca remota")
}

// TestLoad_NetworkFailure_UpstreamError testa falha de transporte.
func TestLoad_NetworkFailure_UpstreamError(t *testing.T) {
	client := &fakeHTTPClient{err: errors.New("connection refused")}
	repo := newRepo(client, newMemoryCache())

	records, err := repo.Load(context.Background())

	assert.Error(t, err)
	assert.IsType(t, &apperror.UpstreamError{}, err)
	assert.Empty(t, records)
}

// TestLoad_UnexpectedStatus_UpstreamError testa resposta não-200 da fonte.
func TestLoad_UnexpectedStatus_UpstreamError(t *testing.T) {
	client := &fakeHTTPClient{response: jsonResponse(http.StatusNotFound, "not found")}
	repo := newRepo(client, newMemoryCache())

	_, err := repo.Load(context.Background())

	assert.Error(t, err)
	assert.IsType(t, &apperror.UpstreamError{}, err)
}

// TestLoad_MalformedBody_ParseError testa corpo que não é um array JSON.
func TestLoad_MalformedBody_ParseError(t *testing.T) {
	client := &fakeHTTPClient{response: jsonResponse(http.StatusOK, `{"not":"an array"`)}
	sessionCache := newMemoryCache()
	repo := newRepo(client, sessionCache)

	records, err := repo.Load(context.Background())

	assert.Error(t, err)
	assert.IsType(t, &apperror.ParseError{}, err)
	assert.Empty(t, records)
	assert.NotContains(t, sessionCache.data, "propertiesData", "falha de parse não pode popular o cache")
}

// TestLoad_CorruptCache_Refetches testa que cache malformado é descartado e a
// fonte remota é consultada de novo.
func TestLoad_CorruptCache_Refetches(t *testing.T) {
	client := &fakeHTTPClient{response: jsonResponse(http.StatusOK,
		`[{"address":"Rua A","building":"B1","complement":"","inscription":""}]`)}
	sessionCache := newMemoryCache()
	sessionCache.data["propertiesData"] = "{{{nao-e-json"
	repo := newRepo(client, sessionCache)

	records, err := repo.Load(context.Background())

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, client.calls)
}

// TestLoad_EmptyArray testa a fonte retornando um array vazio: não é erro.
func TestLoad_EmptyArray(t *testing.T) {
	client := &fakeHTTPClient{response: jsonResponse(http.StatusOK, `[]`)}
	repo := newRepo(client, newMemoryCache())

	records, err := repo.Load(context.Background())

	assert.NoError(t, err)
	assert.Len(t, records, 0)
}

var _ domain.ListingRepository = (*propertyrepo.PropertyRepository)(nil)
