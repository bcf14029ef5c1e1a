package middleware

import (
	"context"
	"net/http"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Usamos um tipo próprio para garantir que a chave seja única e não haja
// conflito com chaves string de outros pacotes.
type ContextKey int

const (
	SessionKey ContextKey = iota
)

// SessionInfo representa o estado de sessão extraído do token e confirmado
// no armazenamento durável, anexado ao contexto da requisição.
type SessionInfo struct {
	SessionID string
	UserEmail string
	IsAdmin   bool
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.SessionClaims, error)
}

// SessionLookup define o contrato de resolução de sessão no armazenamento durável.
// A consulta durável é obrigatória: o logout destrói a entrada e revoga o token,
// já que o token em si nunca expira.
type SessionLookup interface {
	Find(ctx context.Context, sessionID string) (domain.Session, error)
}

// NewAuthMiddleware cria uma função de middleware que valida o token de sessão,
// confirma a sessão no armazenamento durável e anexa o SessionInfo ao contexto.
// Acesso sem sessão válida recebe 401 com indicação da rota de login.
func NewAuthMiddleware(tokenSvc TokenService, sessions SessionLookup) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				rejectUnauthenticated(w)
				return
			}

			tokenString := authHeader[7:]

			// 2. Validar a assinatura do Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				rejectUnauthenticated(w)
				return
			}

			// 3. Confirmar a sessão durável (logout = revogação)
			session, err := sessions.Find(r.Context(), claims.SessionID)
			if err != nil || !session.Authenticated {
				rejectUnauthenticated(w)
				return
			}

			// 4. Anexar o estado de sessão ao contexto
			info := SessionInfo{
				SessionID: session.ID,
				UserEmail: session.UserEmail,
				IsAdmin:   session.IsAdmin,
			}

			ctx := context.WithValue(r.Context(), SessionKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetSessionFromContext é uma função utilitária para extrair a sessão no handler.
func GetSessionFromContext(ctx context.Context) (SessionInfo, bool) {
	info, ok := ctx.Value(SessionKey).(SessionInfo)
	return info, ok
}

// AdminOnly garante que a sessão anexada ao contexto pertence ao administrador.
// Deve ser aplicado após o NewAuthMiddleware.
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, ok := GetSessionFromContext(r.Context())
		if !ok {
			rejectUnauthenticated(w)
			return
		}

		if !info.IsAdmin {
			http.Error(w, apperror.NewUnauthorizedError("Acesso restrito ao administrador.").Error(), http.StatusForbidden) // 403
			return
		}

		next.ServeHTTP(w, r)
	}
}

// rejectUnauthenticated envia o 401 padrão apontando para o gate de login.
func rejectUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Location", "/v1/login")
	http.Error(w, apperror.NewUnauthorizedError("Sessão ausente ou inválida. Autentique-se em /v1/login.").Error(), http.StatusUnauthorized)
}
