package handler

import (
	"net/http"

	"simplifique/internal/apierror"
	"simplifique/internal/dto"
	"simplifique/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// Criar godoc
// @Summary      Criar usuário
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarUsuarioRequest true "Dados do usuário"
// @Success      201  {object} dto.UsuarioResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/usuarios [post]
func (h *UsuariosHandler) Criar(c *gin.Context) {
	var req dto.CriarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarUsuario(c.Request.Context(), req)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar usuários
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.UsuarioResponse
// @Router       /v1/usuarios [get]
func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary      Desativar usuário
// @Tags         usuarios
// @Security     BearerAuth
// @Param        id path string true "UUID do usuário"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/usuarios/{id} [delete]
func (h *UsuariosHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesativarUsuario(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
