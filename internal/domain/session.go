package domain

import "time"

// User representa uma identidade registrada junto ao provedor local de credenciais.
// Registrar uma conta NÃO libera o dashboard: o email ainda precisa estar na
// lista de autorizados mantida pelo administrador.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session é o estado de sessão persistido no armazenamento durável no login
// e destruído no logout. Não há expiração nem revogação automática: o logout
// é a única transição de volta para anônimo.
type Session struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	IsAdmin       bool      `json:"is_admin"`
	UserEmail     string    `json:"user_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx Context, user User) (User, error)
	FindByEmail(ctx Context, email string) (User, error)
}

// AuthService define o contrato do gate de autenticação.
type AuthService interface {
	Register(ctx Context, registration UserRegistration) (User, error)
	Login(ctx Context, email string, password string) (Session, string, error)
	Logout(ctx Context, sessionID string) error
}
