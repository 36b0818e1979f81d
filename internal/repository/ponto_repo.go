package repository

import (
	"context"

	apperror "simplifique/internal/errors"
	"simplifique/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PontoRepository reads the user points ledger. The ledger is append-only;
// Create exists for seeding and for admin-granted credits.
type PontoRepository interface {
	ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Ponto, error)
	Create(ctx context.Context, p *model.Ponto) error
}

type pontoRepo struct{ db *gorm.DB }

func NewPontoRepository(db *gorm.DB) PontoRepository { return &pontoRepo{db: db} }

func (r *pontoRepo) ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Ponto, error) {
	var pontos []model.Ponto
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("data_movimento ASC, id ASC").
		Find(&pontos).Error
	if err != nil {
		return nil, apperror.NewPersistencia("listar pontos", err)
	}
	return pontos, nil
}

func (r *pontoRepo) Create(ctx context.Context, p *model.Ponto) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return apperror.NewPersistencia("registrar pontos", err)
	}
	return nil
}
