package handler

import (
	"net/http"

	"simplifique/internal/middleware"
	"simplifique/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PontosHandler struct{ svc service.PontosService }

func NewPontosHandler(svc service.PontosService) *PontosHandler {
	return &PontosHandler{svc: svc}
}

// Saldo godoc
// @Summary      Consultar saldo de pontos do usuário autenticado
// @Description  Deriva saldo atual, pontos em processamento, total acumulado e total retirado do histórico de pontos.
// @Tags         pontos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SaldoResponse
// @Router       /v1/pontos/saldo [get]
func (h *PontosHandler) Saldo(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CalcularSaldos(c.Request.Context(), usuarioID)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
