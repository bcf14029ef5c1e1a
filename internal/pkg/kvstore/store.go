package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
)

// ErrKeyNotFound é retornado quando a chave não existe no armazenamento durável.
var ErrKeyNotFound = errors.New("chave não encontrada no armazenamento durável")

// Store define o contrato do armazenamento durável chave-valor.
// Valores são serializados como JSON; a escrita é last-write-wins (upsert único),
// sem proteção contra escritores concorrentes.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// PostgresStore é a implementação concreta da interface Store,
// usando a tabela kv_entries (key TEXT PRIMARY KEY, value JSONB).
type PostgresStore struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPostgresStore cria uma nova instância do Store durável, injetando o DB.
func NewPostgresStore(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Get lê o valor JSON associado à chave e o desserializa em dest.
// Retorna ErrKeyNotFound se a chave não existir.
func (s *PostgresStore) Get(ctx context.Context, key string, dest interface{}) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const query = `SELECT value FROM kv_entries WHERE key = $1`

	var raw []byte
	err := s.DB.QueryRowContext(ctxTimeout, query, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrKeyNotFound
		}
		s.logger.Error("Falha ao ler chave do armazenamento durável.", err)
		return apperror.NewDBError(fmt.Sprintf("falha ao ler a chave %q", key), err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Error("Valor durável com JSON inválido.", err)
		return apperror.NewInternalError(fmt.Sprintf("valor inválido armazenado na chave %q", key), err)
	}
	return nil
}

// Set serializa value como JSON e grava na chave em uma única escrita (upsert).
func (s *PostgresStore) Set(ctx context.Context, key string, value interface{}) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		return apperror.NewInternalError(fmt.Sprintf("falha ao serializar valor da chave %q", key), err)
	}

	const query = `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, $3)
	               ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.DB.ExecContext(ctxTimeout, query, key, raw, time.Now().UTC()); err != nil {
		s.logger.Error("Falha ao gravar chave no armazenamento durável.", err)
		return apperror.NewDBError(fmt.Sprintf("falha ao gravar a chave %q", key), err)
	}
	return nil
}

// Delete remove a chave do armazenamento durável. Remover chave inexistente não é erro.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const query = `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.DB.ExecContext(ctxTimeout, query, key); err != nil {
		s.logger.Error("Falha ao remover chave do armazenamento durável.", err)
		return apperror.NewDBError(fmt.Sprintf("falha ao remover a chave %q", key), err)
	}
	return nil
}
