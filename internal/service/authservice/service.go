package authservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"serenity/internal/domain"
	apperror "serenity/internal/errors"
	"serenity/internal/pkg/logger"
)

// AuthorizedEmailLookup define o contrato de consulta à lista de autorizados
// mantida pelo administrador. A verificação é por igualdade exata.
type AuthorizedEmailLookup interface {
	GetEmails(ctx context.Context) ([]string, error)
}

// SessionStore define o contrato de ciclo de vida do estado de sessão:
// criado no login, destruído no logout, nada no meio.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, sessionID string) error
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(sessionID string, email string, isAdmin bool) (string, error)
}

// Service implementa a interface domain.AuthService (o gate de autenticação).
//
// O login só transita para Autenticado quando AMBAS as verificações passam:
// (a) o provedor de identidade aceita o par email/senha e
// (b) o email está na lista de autorizados do administrador.
// Falhar qualquer uma delas não persiste nada.
type Service struct {
	UserRepo   domain.UserRepository
	Authorized AuthorizedEmailLookup
	Sessions   SessionStore
	TokenSvc   TokenService
	AdminEmail string
	logger     logger.Logger
}

// NewService cria uma nova instância do gate, injetando as dependências.
func NewService(userRepo domain.UserRepository, authorized AuthorizedEmailLookup, sessions SessionStore, tokenSvc TokenService, adminEmail string, log logger.Logger) *Service {
	return &Service{
		UserRepo:   userRepo,
		Authorized: authorized,
		Sessions:   sessions,
		TokenSvc:   tokenSvc,
		AdminEmail: adminEmail,
		logger:     log,
	}
}

// Register registra uma nova identidade junto ao provedor local.
// Registrar NÃO autoriza: o acesso ao dashboard continua dependendo da
// lista de emails autorizados.
func (s *Service) Register(ctx domain.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação Básica
	if registration.Email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	// 2. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	newUser := domain.User{
		Email:        registration.Email,
		PasswordHash: string(hashedPassword),
	}

	// 3. Chamada ao Repositório para Persistência
	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		// Violação de unicidade do email vira Conflito de Negócio (409).
		var dbErr *apperror.InternalError
		if errors.As(err, &dbErr) {
			return domain.User{}, apperror.NewConflictError(
				fmt.Sprintf("O email '%s' já está em uso.", registration.Email),
			)
		}
		return domain.User{}, err
	}

	return user, nil
}

// Login executa a transição Anônimo → Autenticando → Autenticado|Falha.
// No sucesso, persiste o estado de sessão durável e retorna a sessão com o
// token de portador correspondente.
func (s *Service) Login(ctx domain.Context, email string, password string) (domain.Session, string, error) {
	// 1. Validação Básica
	if email == "" || password == "" {
		return domain.Session{}, "", apperror.NewAuthError(apperror.ReasonBadCredentials, "Email e senha são obrigatórios.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
	}

	// 2. Verificação (a): provedor de identidade
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira credenciais inválidas para não dar dicas a invasores.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.Session{}, "", apperror.NewAuthError(apperror.ReasonBadCredentials, "Email ou senha incorretos.")
		}
		return domain.Session{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, "", apperror.NewAuthError(apperror.ReasonBadCredentials, "Email ou senha incorretos.")
	}

	// 3. Verificação (b): lista de emails autorizados (igualdade exata,
	// sensível a maiúsculas). Credenciais válidas sem autorização NÃO
	// persistem nenhuma chave de sessão.
	emails, err := s.Authorized.GetEmails(ctxGo)
	if err != nil {
		s.logger.Error("Falha ao consultar a lista de emails autorizados no login.", err)
		return domain.Session{}, "", apperror.NewInternalError("Falha interna ao verificar autorização.", err)
	}

	authorized := false
	for _, allowed := range emails {
		if allowed == email {
			authorized = true
			break
		}
	}
	if !authorized {
		s.logger.Warn("Login recusado: email não autorizado.", map[string]interface{}{"email": email})
		return domain.Session{}, "", apperror.NewAuthError(apperror.ReasonNotAuthorized, "Este email não está autorizado.")
	}

	// 4. Persistir o estado de sessão durável
	session := domain.Session{
		ID:            uuid.NewString(),
		Authenticated: true,
		IsAdmin:       email == s.AdminEmail,
		UserEmail:     email,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Sessions.Create(ctxGo, session); err != nil {
		s.logger.Error("Falha ao persistir o estado de sessão.", err)
		return domain.Session{}, "", apperror.NewInternalError("Falha interna ao criar a sessão.", err)
	}

	// 5. Emitir o token de portador da sessão
	tokenString, err := s.TokenSvc.GenerateToken(session.ID, session.UserEmail, session.IsAdmin)
	if err != nil {
		// Sem token a sessão é inalcançável: desfaz a escrita para não deixar lixo durável.
		s.Sessions.Delete(ctxGo, session.ID)
		return domain.Session{}, "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"email": email, "is_admin": session.IsAdmin})
	return session, tokenString, nil
}

// Logout destrói o estado de sessão durável: a única transição de volta para anônimo.
func (s *Service) Logout(ctx domain.Context, sessionID string) error {
	if sessionID == "" {
		return apperror.NewValidationError("ID de sessão ausente.")
	}

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
	}

	if err := s.Sessions.Delete(ctxGo, sessionID); err != nil {
		s.logger.Error("Falha ao destruir a sessão.", err)
		return apperror.NewInternalError("Falha interna ao encerrar a sessão.", err)
	}

	return nil
}
