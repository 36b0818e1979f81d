package repository

import (
	"context"
	"errors"

	apperror "simplifique/internal/errors"
	"simplifique/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BrindeRepository defines the data access contract for the gift catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BrindeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Brinde, error)
	ListAtivos(ctx context.Context) ([]model.Brinde, error)
	Upsert(ctx context.Context, b *model.Brinde) error
	DB() *gorm.DB
}

type brindeRepo struct{ db *gorm.DB }

func NewBrindeRepository(db *gorm.DB) BrindeRepository { return &brindeRepo{db: db} }

func (r *brindeRepo) FindByID(ctx context.Context, id uint) (*model.Brinde, error) {
	var b model.Brinde
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNaoEncontrado("variante", id)
	}
	if err != nil {
		return nil, apperror.NewPersistencia("buscar variante", err)
	}
	return &b, nil
}

func (r *brindeRepo) ListAtivos(ctx context.Context) ([]model.Brinde, error) {
	var brindes []model.Brinde
	err := r.db.WithContext(ctx).Where("ativo = true").Order("id ASC").Find(&brindes).Error
	if err != nil {
		return nil, apperror.NewPersistencia("listar catálogo", err)
	}
	return brindes, nil
}

// Upsert inserts or refreshes a catalog row by id — used by the CSV importer.
// EstoqueInicial is written only on insert; reimports never touch the
// baseline, since net stock is derived from it plus the movement log.
func (r *brindeRepo) Upsert(ctx context.Context, b *model.Brinde) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"produto_id", "sku", "nome", "descricao", "detalhes", "categoria",
			"tamanho", "custo_pontos", "imagem_url", "tags", "ativo", "updated_at",
		}),
	}).Create(b).Error
	if err != nil {
		return apperror.NewPersistencia("importar variante", err)
	}
	return nil
}

func (r *brindeRepo) DB() *gorm.DB { return r.db }
