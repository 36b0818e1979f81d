package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"simplifique/internal/apierror"
	"simplifique/internal/dto"
	"simplifique/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CatalogoHandler serves the public storefront endpoints. No authentication
// required — browsing the catalog has no side effects.
type CatalogoHandler struct {
	svc      service.CatalogoService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewCatalogoHandler(svc service.CatalogoService, rdb *redis.Client, cacheTTL time.Duration) *CatalogoHandler {
	return &CatalogoHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

// ListarVariacoes godoc
// @Summary      Listar variações ativas do catálogo
// @Description  Retorna todas as variações ativas com estoque atual reconciliado.
// @Tags         brindes
// @Produce      json
// @Success      200 {array} dto.VarianteResponse
// @Router       /v1/brindes [get]
func (h *CatalogoHandler) ListarVariacoes(c *gin.Context) {
	resp, err := h.svc.ListarVariacoes(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarProdutos godoc
// @Summary      Listar catálogo agrupado por produto
// @Description  Agrupa variações por product_id: tamanhos, menor custo, estoque somado. Resposta cacheada em Redis; confirmações de resgate invalidam o cache.
// @Tags         brindes
// @Produce      json
// @Success      200 {array} dto.ProdutoAgrupadoResponse
// @Router       /v1/brindes/produtos [get]
func (h *CatalogoHandler) ListarProdutos(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try Redis cache
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, service.CatalogoCacheKey).Bytes(); err == nil {
			var resp []dto.ProdutoAgrupadoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	// 2. Cache miss — group from the catalog and the movement log
	resp, err := h.svc.AgruparPorProduto(ctx)
	if err != nil {
		respondErro(c, err)
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), service.CatalogoCacheKey, b, h.cacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Estoque godoc
// @Summary      Consultar estoque atual de uma variação
// @Tags         brindes
// @Produce      json
// @Param        id path int true "ID da variação"
// @Success      200 {object} dto.EstoqueVarianteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/brindes/{id}/estoque [get]
func (h *CatalogoHandler) Estoque(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.EstoqueVariacao(c.Request.Context(), uint(id))
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
