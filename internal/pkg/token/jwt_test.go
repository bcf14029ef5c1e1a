package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"serenity/internal/pkg/token"
)

// TestGenerateAndValidateToken testa o ciclo completo: o token gerado carrega
// o ID da sessão durável e resolve de volta para as mesmas claims.
func TestGenerateAndValidateToken(t *testing.T) {
	svc := token.NewService("chave-secreta-de-teste")

	tokenString, err := svc.GenerateToken("sess-123", "maria@example.com", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "sess-123", claims.SessionID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Nil(t, claims.ExpiresAt, "o token de sessão não expira por tempo")
}

// TestValidateToken_WrongSecret testa que um token assinado com outra chave é rejeitado.
func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, err := token.NewService("chave-a").GenerateToken("sess-1", "x@example.com", false)
	assert.NoError(t, err)

	claims, err := token.NewService("chave-b").ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

// TestValidateToken_Malformed testa a rejeição de lixo no lugar do token.
func TestValidateToken_Malformed(t *testing.T) {
	claims, err := token.NewService("chave").ValidateToken("nao.e.um.jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
