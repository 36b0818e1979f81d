package handler

import (
	"net/http"

	"simplifique/internal/dto"
	"simplifique/internal/middleware"
	"simplifique/internal/repository"
	"simplifique/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResgatesHandler struct{ svc service.ResgateService }

func NewResgatesHandler(svc service.ResgateService) *ResgatesHandler {
	return &ResgatesHandler{svc: svc}
}

// Criar godoc
// @Summary      Reservar um resgate de brindes
// @Description  Valida o lote inteiro contra a disponibilidade atual e grava uma movimentação OUT em processing por item, tudo ou nada.
// @Tags         movimentacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarResgateRequest true "Itens do resgate"
// @Success      201  {object} dto.ResgateResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/movimentacoes/resgate [post]
func (h *ResgatesHandler) Criar(c *gin.Context) {
	var req dto.CriarResgateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CriarResgate(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Confirmar godoc
// @Summary      Confirmar uma movimentação em processamento
// @Description  Promove processing → confirmed. Movimentações terminais são imutáveis (409).
// @Tags         movimentacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ConfirmarResgateRequest true "ID da movimentação"
// @Success      200  {object} dto.MovimentacaoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/movimentacoes/confirmar [post]
func (h *ResgatesHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarResgateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ConfirmarResgate(c.Request.Context(), req.MovID)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar uma movimentação em processamento
// @Description  Promove processing → canceled, liberando a reserva de estoque.
// @Tags         movimentacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CancelarResgateRequest true "ID da movimentação"
// @Success      200  {object} dto.MovimentacaoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/movimentacoes/cancelar [post]
func (h *ResgatesHandler) Cancelar(c *gin.Context) {
	var req dto.CancelarResgateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CancelarResgate(c.Request.Context(), req.MovID)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar movimentações
// @Description  Retorna o log em ordem de mov_id. Usuários comuns veem apenas as próprias movimentações; admins podem filtrar por variação e status.
// @Tags         movimentacoes
// @Produce      json
// @Security     BearerAuth
// @Param        variant_id query int    false "Filtrar por variação"
// @Param        status     query string false "processing | confirmed | canceled"
// @Success      200 {object} dto.MovimentacaoListResponse
// @Router       /v1/movimentacoes [get]
func (h *ResgatesHandler) Listar(c *gin.Context) {
	var q dto.MovimentacaoFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		respondErro(c, err)
		return
	}

	filter := repository.MovimentacaoFilter{Status: q.Status}
	if q.VariantID > 0 {
		filter.BrindeID = &q.VariantID
	}

	claims := middleware.GetClaims(c)
	if claims.Rol != "admin" {
		usuarioID, _ := uuid.Parse(claims.UserID)
		filter.UsuarioID = &usuarioID
	}

	resp, err := h.svc.ListarMovimentacoes(c.Request.Context(), filter)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
