package service

import (
	"context"
	"testing"

	"simplifique/internal/config"
	"simplifique/internal/dto"
	"simplifique/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authFixture(t *testing.T) (AuthService, *stubUsuarioRepo, *model.Usuario) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-segura"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.Usuario{
		ID:           uuid.New(),
		Username:     "admin",
		Nome:         "Administrador",
		PasswordHash: string(hash),
		Rol:          "admin",
		Ativo:        true,
	}
	repo := newStubUsuarioRepo(admin)
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1, JWTRefreshHours: 2}
	return NewAuthService(repo, cfg), repo, admin
}

func TestLogin(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "senha-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Username)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "errada"})
	assert.Error(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "fantasma", Password: "senha-segura"})
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "senha-segura"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "admin", renovado.User.Username)

	_, err = svc.Refresh(ctx, "token-invalido")
	assert.Error(t, err)
}

func TestRefresh_UsuarioDesativado(t *testing.T) {
	svc, repo, admin := authFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "senha-segura"})
	require.NoError(t, err)

	require.NoError(t, repo.Desativar(ctx, admin.ID))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	assert.Error(t, err)
}

func TestCriarUsuario(t *testing.T) {
	svc, repo, _ := authFixture(t)
	ctx := context.Background()

	resp, err := svc.CriarUsuario(ctx, dto.CriarUsuarioRequest{
		Username: "maria",
		Nome:     "Maria Silva",
		Password: "outra-senha",
		Rol:      "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", resp.Username)
	assert.True(t, resp.Ativo)

	criado, err := repo.FindByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.NotEqual(t, "outra-senha", criado.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(criado.PasswordHash), []byte("outra-senha")))

	// New user can log in right away.
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "maria", Password: "outra-senha"})
	assert.NoError(t, err)
}
