package model

import (
	"time"

	"github.com/google/uuid"
)

// Points ledger vocabulary — Portuguese by historical accident, kept as-is
// at the storage boundary.
const (
	PontoTipoCredito = "credito"
	PontoTipoDebito  = "debito"

	PontoStatusConfirmado  = "confirmado"
	PontoStatusProcessando = "processando"
)

// Ponto is one row of the user points ledger (credits earned, debits spent).
// This ledger predates the gift movement log and keeps its own Portuguese
// status vocabulary (confirmado/processando); the two are intentionally not
// merged — see DESIGN.md.
type Ponto struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"type:varchar(10);not null"` // credito | debito
	Quantidade    int       `gorm:"not null"`
	Status        string    `gorm:"type:varchar(12);not null"` // confirmado | processando
	Origem        string
	ReferenciaID  *string
	Observacao    string
	DataMovimento time.Time
	RegistradoPor string
}

// TableName overrides GORM's default pluralization.
func (Ponto) TableName() string { return "pontos" }
