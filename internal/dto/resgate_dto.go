package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemResgateRequest struct {
	VariantID uint `json:"variantId" validate:"required,min=1"`
	Quantity  int  `json:"quantity"  validate:"required,min=1"`
}

// CriarResgateRequest reserves stock for a batch of line items.
// TotalPoints is the cost the client computed; the server recomputes it from
// the catalog and rejects the batch on mismatch.
type CriarResgateRequest struct {
	Items       []ItemResgateRequest `json:"items"       validate:"required,min=1,dive"`
	TotalPoints int                  `json:"totalPoints" validate:"min=0"`
}

type ConfirmarResgateRequest struct {
	MovID uint64 `json:"movId" validate:"required,min=1"`
}

type CancelarResgateRequest struct {
	MovID uint64 `json:"movId" validate:"required,min=1"`
}

// MovimentacaoFilter is bound from query string of GET /v1/movimentacoes.
type MovimentacaoFilter struct {
	VariantID uint   `form:"variant_id"`
	Status    string `form:"status" validate:"omitempty,oneof=processing confirmed canceled"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentacaoResponse struct {
	MovID       uint64 `json:"movId"`
	UserID      string `json:"userId"`
	VariantID   uint   `json:"variantId"`
	ProductID   uint   `json:"productId"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	PointsTotal int    `json:"pointsTotal"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type ResgateResponse struct {
	OK            bool                   `json:"ok"`
	Movimentacoes []MovimentacaoResponse `json:"movimentacoes"`
}

type MovimentacaoListResponse struct {
	Data  []MovimentacaoResponse `json:"data"`
	Total int64                  `json:"total"`
}
