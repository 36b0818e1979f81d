package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement lifecycle. processing → confirmed | canceled; confirmed and
// canceled are terminal — any further transition attempt must fail.
const (
	MovStatusProcessing = "processing"
	MovStatusConfirmed  = "confirmed"
	MovStatusCanceled   = "canceled"
)

// Movement direction. OUT decreases available stock (redemption), IN
// increases it (return / restock).
const (
	MovTipoOut = "OUT"
	MovTipoIn  = "IN"
)

// Movimentacao is one stock-affecting event against a Brinde variant.
// MovID is a Postgres bigserial: assigned exactly once at insert, strictly
// increasing, never reused. Only confirmed movements count toward
// reconciliation.
type Movimentacao struct {
	MovID       uint64    `gorm:"primaryKey;autoIncrement"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;index"`
	BrindeID    uint      `gorm:"not null;index"`
	ProdutoID   uint      `gorm:"not null"`
	SKU         string
	Qtd         int    `gorm:"not null"` // always positive; direction comes from Tipo
	PontosTotal int    `gorm:"not null"`
	Tipo        string `gorm:"type:varchar(3);not null"`
	Status      string `gorm:"type:varchar(10);not null;index"`
	CreatedAt   time.Time

	Brinde *Brinde `gorm:"foreignKey:BrindeID"`
}

// TableName overrides GORM's default pluralization.
func (Movimentacao) TableName() string { return "movimentacoes" }

// Terminal reports whether the movement can no longer change status.
func (m *Movimentacao) Terminal() bool {
	return m.Status == MovStatusConfirmed || m.Status == MovStatusCanceled
}
