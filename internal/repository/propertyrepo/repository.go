package propertyrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/cache"
	"serenity/internal/pkg/logger"
)

// Chave do cache de escopo de sessão com o array bruto de imóveis.
const propertiesCacheKey = "propertiesData"

// HTTPClient define o contrato mínimo de transporte para a busca remota.
// Permite injetar um cliente fake nos testes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PropertyRepository implementa a interface domain.ListingRepository.
// A fonte remota é um único GET retornando o array completo de registros;
// não há paginação nem autenticação na origem. O array é carregado
// integralmente em memória e cacheado no escopo da sessão (Cache-Aside).
type PropertyRepository struct {
	Client   HTTPClient
	Cache    cache.Client
	URL      string
	CacheTTL time.Duration
	logger   logger.Logger
}

// NewPropertyRepository cria e retorna uma nova instância do Repositório.
func NewPropertyRepository(client HTTPClient, cacheClient cache.Client, url string, cacheTTL time.Duration, log logger.Logger) *PropertyRepository {
	return &PropertyRepository{
		Client:   client,
		Cache:    cacheClient,
		URL:      url,
		CacheTTL: cacheTTL,
		logger:   log,
	}
}

// remoteRecord espelha o formato da fonte remota (sem chave estável).
type remoteRecord struct {
	Address     string `json:"address"`
	Building    string `json:"building"`
	Complement  string `json:"complement"`
	Inscription string `json:"inscription"`
}

// Load retorna o conjunto completo de registros, idempotente dentro da sessão.
//
// Estratégia Cache-Aside: primeiro tenta o cache de sessão; se presente e bem
// formado, retorna sem nenhum acesso à rede. Caso contrário faz um único GET
// na fonte configurada, popula o cache e retorna. Falha de transporte vira
// UpstreamError e corpo malformado vira ParseError; em ambos os casos o
// conjunto permanece vazio e o chamador pode repetir a ação manualmente.
func (r *PropertyRepository) Load(ctx domain.Context) ([]domain.PropertyRecord, error) {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
	}

	// --- 1. Tentar o cache de sessão ---
	cachedData, err := r.Cache.Get(ctxGo, propertiesCacheKey)
	if err == nil {
		var records []domain.PropertyRecord
		if json.Unmarshal([]byte(cachedData), &records) == nil {
			r.logger.Debug("Registros de imóveis servidos do cache de sessão.", map[string]interface{}{"count": len(records)})
			return records, nil
		}
		// Cache corrompido: descarta e segue para a fonte remota.
		r.Cache.Delete(ctxGo, propertiesCacheKey)
		r.logger.Warn("Cache de imóveis malformado, recarregando da fonte remota.", nil)
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (conexão perdida): logamos e seguimos para a fonte.
		r.logger.Warn("Falha ao ler o cache de imóveis, seguindo para a fonte remota.", map[string]interface{}{"error": err.Error()})
	}

	// --- 2. Buscar na fonte remota ---
	req, err := http.NewRequestWithContext(ctxGo, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, apperror.NewUpstreamError("requisição inválida para a fonte de imóveis", err)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		r.logger.Error("Falha de transporte ao buscar a fonte de imóveis.", err)
		return nil, apperror.NewUpstreamError("não foi possível alcançar a fonte de imóveis", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Fonte de imóveis respondeu com status inesperado.", fmt.Errorf("status %d", resp.StatusCode))
		return nil, apperror.NewUpstreamError(fmt.Sprintf("fonte de imóveis respondeu %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewUpstreamError("falha ao ler o corpo da resposta da fonte de imóveis", err)
	}

	var remote []remoteRecord
	if err := json.Unmarshal(body, &remote); err != nil {
		r.logger.Error("Corpo da fonte de imóveis não é um array JSON válido.", err)
		return nil, apperror.NewParseError("a fonte de imóveis retornou um corpo que não é um array JSON", err)
	}

	// A fonte não possui chave estável: o ID é sintético e posicional.
	records := make([]domain.PropertyRecord, len(remote))
	for i, rec := range remote {
		records[i] = domain.PropertyRecord{
			ID:          fmt.Sprintf("prop-%06d", i+1),
			Address:     rec.Address,
			Building:    rec.Building,
			Complement:  rec.Complement,
			Inscription: rec.Inscription,
		}
	}

	// --- 3. Popular o cache de sessão ---
	// A escrita é idempotente e não-fatal: se a view que disparou o carregamento
	// já não existir, ou o cache estiver indisponível, nada quebra.
	if payload, marshalErr := json.Marshal(records); marshalErr == nil {
		if cacheErr := r.Cache.Set(ctxGo, propertiesCacheKey, payload, r.CacheTTL); cacheErr != nil {
			r.logger.Warn("Falha ao popular o cache de imóveis.", map[string]interface{}{"error": cacheErr.Error()})
		}
	}

	r.logger.Info("Registros de imóveis carregados da fonte remota.", map[string]interface{}{"count": len(records)})
	return records, nil
}
