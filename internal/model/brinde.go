package model

import "time"

// Brinde is one redeemable catalog variant (SKU level — e.g. one size of one
// shirt). Rows come from the flat-file catalog import; EstoqueInicial never
// changes after load. Net stock is always derived from the movement log, so
// there is no stock column to drift here.
type Brinde struct {
	ID             uint   `gorm:"primaryKey"` // catalog-assigned, always positive
	ProdutoID      uint   `gorm:"not null;index"`
	SKU            string `gorm:"not null"`
	Nome           string `gorm:"not null;index"`
	Descricao      string
	Detalhes       string
	Categoria      string
	Tamanho        *string
	CustoPontos    int `gorm:"not null"`
	EstoqueInicial int `gorm:"not null"`
	ImagemURL      *string
	Tags           string
	Ativo          bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides GORM's default pluralization.
func (Brinde) TableName() string { return "brindes" }
