package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simplifique/internal/dto"
	apperror "simplifique/internal/errors"
	"simplifique/internal/middleware"
	"simplifique/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResgateService returns canned responses so handler tests exercise only
// binding, claims plumbing and error translation.
type fakeResgateService struct {
	criarErr      error
	confirmarErr  error
	lastUsuarioID uuid.UUID
	lastFilter    repository.MovimentacaoFilter
}

func (f *fakeResgateService) CriarResgate(_ context.Context, usuarioID uuid.UUID, req dto.CriarResgateRequest) (*dto.ResgateResponse, error) {
	if f.criarErr != nil {
		return nil, f.criarErr
	}
	f.lastUsuarioID = usuarioID
	movs := make([]dto.MovimentacaoResponse, len(req.Items))
	for i, item := range req.Items {
		movs[i] = dto.MovimentacaoResponse{
			MovID:     uint64(i + 1),
			UserID:    usuarioID.String(),
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Type:      "OUT",
			Status:    "processing",
		}
	}
	return &dto.ResgateResponse{OK: true, Movimentacoes: movs}, nil
}

func (f *fakeResgateService) ConfirmarResgate(_ context.Context, movID uint64) (*dto.MovimentacaoResponse, error) {
	if f.confirmarErr != nil {
		return nil, f.confirmarErr
	}
	return &dto.MovimentacaoResponse{MovID: movID, Status: "confirmed"}, nil
}

func (f *fakeResgateService) CancelarResgate(_ context.Context, movID uint64) (*dto.MovimentacaoResponse, error) {
	return &dto.MovimentacaoResponse{MovID: movID, Status: "canceled"}, nil
}

func (f *fakeResgateService) ListarMovimentacoes(_ context.Context, filter repository.MovimentacaoFilter) (*dto.MovimentacaoListResponse, error) {
	f.lastFilter = filter
	return &dto.MovimentacaoListResponse{Data: []dto.MovimentacaoResponse{}, Total: 0}, nil
}

func setupRouter(svc *fakeResgateService, rol string, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewResgatesHandler(svc)
	injectClaims := func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: userID.String(), Username: "teste", Rol: rol})
	}
	r.POST("/v1/movimentacoes/resgate", injectClaims, h.Criar)
	r.POST("/v1/movimentacoes/confirmar", injectClaims, h.Confirmar)
	r.GET("/v1/movimentacoes", injectClaims, h.Listar)
	return r
}

func TestCriar_Handler(t *testing.T) {
	svc := &fakeResgateService{}
	userID := uuid.New()
	r := setupRouter(svc, "user", userID)

	w := httptest.NewRecorder()
	body := `{"items":[{"variantId":101,"quantity":2}],"totalPoints":400}`
	req := httptest.NewRequest(http.MethodPost, "/v1/movimentacoes/resgate", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, userID, svc.lastUsuarioID, "user id must come from the JWT claims, not the body")
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestCriar_Handler_CorpoInvalido(t *testing.T) {
	r := setupRouter(&fakeResgateService{}, "user", uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/movimentacoes/resgate", strings.NewReader(`{nope`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid JSON, invalid payload (empty items).
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/movimentacoes/resgate", strings.NewReader(`{"items":[]}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCriar_Handler_MapeamentoDeErros(t *testing.T) {
	cases := []struct {
		nome   string
		err    error
		status int
	}{
		{"estoque insuficiente", &apperror.EstoqueInsuficienteError{BrindeID: 1, Solicitado: 5, Disponivel: 2}, http.StatusUnprocessableEntity},
		{"variante inexistente", apperror.NewNaoEncontrado("variante", 9), http.StatusNotFound},
		{"custo invalido", &apperror.CustoInvalidoError{BrindeID: 1, Custo: 0}, http.StatusUnprocessableEntity},
		{"validacao", apperror.NewValidation("totalPoints", "não confere"), http.StatusBadRequest},
		{"persistencia", apperror.NewPersistencia("op", assert.AnError), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			r := setupRouter(&fakeResgateService{criarErr: tc.err}, "user", uuid.New())
			w := httptest.NewRecorder()
			body := `{"items":[{"variantId":1,"quantity":1}]}`
			req := httptest.NewRequest(http.MethodPost, "/v1/movimentacoes/resgate", strings.NewReader(body))
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestConfirmar_Handler_TransicaoInvalida(t *testing.T) {
	svc := &fakeResgateService{confirmarErr: &apperror.TransicaoInvalidaError{MovID: 7, Status: "confirmed"}}
	r := setupRouter(svc, "admin", uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/movimentacoes/confirmar", strings.NewReader(`{"movId":7}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmar_Handler_Persistencia_NaoVazaDetalhe(t *testing.T) {
	svc := &fakeResgateService{confirmarErr: apperror.NewPersistencia("atualizar status", assert.AnError)}
	r := setupRouter(svc, "admin", uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/movimentacoes/confirmar", strings.NewReader(`{"movId":7}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "atualizar status")
	assert.Contains(t, w.Body.String(), "Erro interno do servidor")
}

func TestListar_Handler_EscopoPorPapel(t *testing.T) {
	userID := uuid.New()

	// Regular users are pinned to their own movements.
	svc := &fakeResgateService{}
	r := setupRouter(svc, "user", userID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/movimentacoes?variant_id=3&status=confirmed", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastFilter.UsuarioID)
	assert.Equal(t, userID, *svc.lastFilter.UsuarioID)
	require.NotNil(t, svc.lastFilter.BrindeID)
	assert.Equal(t, uint(3), *svc.lastFilter.BrindeID)
	assert.Equal(t, "confirmed", svc.lastFilter.Status)

	// Admins see everything.
	svc = &fakeResgateService{}
	r = setupRouter(svc, "admin", userID)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/movimentacoes", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastFilter.UsuarioID)
}
