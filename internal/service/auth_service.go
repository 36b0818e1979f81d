package service

import (
	"context"
	"errors"
	"time"

	"simplifique/internal/config"
	"simplifique/internal/dto"
	"simplifique/internal/model"
	"simplifique/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	DesativarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("credenciais inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciais inválidas")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token inválido ou expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Ativo {
		return nil, errors.New("usuário não encontrado ou inativo")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Ativo:        true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) DesativarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.Desativar(ctx, id)
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nome:     u.Nome,
		Email:    u.Email,
		Rol:      u.Rol,
		Ativo:    u.Ativo,
	}
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"rol":      user.Rol,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
