package dto

// JSON field names follow the contract the web frontend already consumes
// (camelCase except product_id, which it expects snake_case).

// VarianteResponse is one catalog variant annotated with its reconciled
// current stock.
type VarianteResponse struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Details      string  `json:"details"`
	Category     string  `json:"category"`
	Size         *string `json:"size"`
	PointsCost   int     `json:"pointsCost"`
	StockInitial int     `json:"stockInitial"`
	StockCurrent int     `json:"stockCurrent"`
	ImageURL     *string `json:"imageUrl"`
}

// VarianteAgrupada is the per-size entry inside a grouped product card.
type VarianteAgrupada struct {
	ID           uint    `json:"id"`
	SKU          string  `json:"sku"`
	Size         *string `json:"size"`
	PointsCost   int     `json:"pointsCost"`
	StockCurrent int     `json:"stockCurrent"`
	ImageURL     *string `json:"imageUrl"`
}

// ProdutoAgrupadoResponse groups variants of the same product for the
// storefront cards: sizes, minimum cost across variants, summed stock.
type ProdutoAgrupadoResponse struct {
	ProductID   uint               `json:"product_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Details     string             `json:"details"`
	Category    string             `json:"category"`
	ImageURL    *string            `json:"imageUrl"`
	PointsCost  int                `json:"pointsCost"`
	Stock       int                `json:"stock"`
	Sizes       []string           `json:"sizes"`
	Variants    []VarianteAgrupada `json:"variants"`
}

type EstoqueVarianteResponse struct {
	VariantID    uint `json:"variantId"`
	StockCurrent int  `json:"stockCurrent"`
}
