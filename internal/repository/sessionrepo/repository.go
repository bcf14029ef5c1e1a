package sessionrepo

import (
	"context"
	"errors"
	"fmt"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/kvstore"
	"serenity/internal/pkg/logger"
)

// sessionKey monta a chave durável de uma sessão.
func sessionKey(id string) string {
	return "session:" + id
}

// SessionRepository persiste o estado de sessão no armazenamento durável.
// O estado é criado no login e destruído apenas no logout: não há expiração
// nem revogação automática, a entrada permanece válida até ser removida.
type SessionRepository struct {
	Store  kvstore.Store
	logger logger.Logger
}

// NewSessionRepository cria uma nova instância do repositório de sessões.
func NewSessionRepository(store kvstore.Store, log logger.Logger) *SessionRepository {
	return &SessionRepository{
		Store:  store,
		logger: log,
	}
}

// Create grava o estado de sessão em uma única escrita.
func (r *SessionRepository) Create(ctx context.Context, session domain.Session) error {
	if err := r.Store.Set(ctx, sessionKey(session.ID), session); err != nil {
		return err
	}
	r.logger.Info("Sessão criada no armazenamento durável.", map[string]interface{}{"session_id": session.ID, "email": session.UserEmail})
	return nil
}

// Find resolve uma sessão pelo ID.
func (r *SessionRepository) Find(ctx context.Context, sessionID string) (domain.Session, error) {
	var session domain.Session
	err := r.Store.Get(ctx, sessionKey(sessionID), &session)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return domain.Session{}, apperror.NewNotFoundError(fmt.Sprintf("Sessão '%s' não encontrada", sessionID))
		}
		return domain.Session{}, err
	}
	return session, nil
}

// Delete destrói a sessão. É a única transição de volta para anônimo.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.Store.Delete(ctx, sessionKey(sessionID)); err != nil {
		return err
	}
	r.logger.Info("Sessão destruída.", map[string]interface{}{"session_id": sessionID})
	return nil
}
