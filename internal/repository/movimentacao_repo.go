package repository

import (
	"context"
	"errors"
	"time"

	apperror "simplifique/internal/errors"
	"simplifique/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovimentacaoFilter defines filters for listing movements.
type MovimentacaoFilter struct {
	UsuarioID *uuid.UUID
	BrindeID  *uint
	Status    string
}

// SaldoMovimentacoes aggregates confirmed quantities for one variant.
type SaldoMovimentacoes struct {
	Saidas   int
	Entradas int
}

// MovimentacaoRepository owns every write to the movement log — no other
// component mutates movement state. Each append and status update is a single
// statement, durable when the call returns; batch appends run inside the
// caller's transaction and are all-or-nothing.
type MovimentacaoRepository interface {
	Append(ctx context.Context, m *model.Movimentacao) error
	AppendBatchTx(tx *gorm.DB, movs []*model.Movimentacao) error
	ListAll(ctx context.Context, filter MovimentacaoFilter) ([]model.Movimentacao, int64, error)
	FindByID(ctx context.Context, movID uint64) (*model.Movimentacao, error)
	// FindByIDTx locks the movement row FOR UPDATE inside tx so that a status
	// check and the subsequent update cannot interleave with another writer.
	FindByIDTx(tx *gorm.DB, movID uint64) (*model.Movimentacao, error)
	UpdateStatusTx(tx *gorm.DB, movID uint64, status string) error
	// SomarConfirmadas replays the log for one variant: Σ OUT and Σ IN over
	// confirmed movements only.
	SomarConfirmadas(ctx context.Context, brindeID uint) (saidas, entradas int, err error)
	// SomarConfirmadasTodas returns the same sums for every variant at once.
	SomarConfirmadasTodas(ctx context.Context) (map[uint]SaldoMovimentacoes, error)
	// SomarReservas is Σ OUT quantity over movements still in processing.
	SomarReservas(ctx context.Context, brindeID uint) (int, error)
	ListarProcessandoAntesDe(ctx context.Context, cutoff time.Time, limit int) ([]model.Movimentacao, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type movimentacaoRepo struct{ db *gorm.DB }

func NewMovimentacaoRepository(db *gorm.DB) MovimentacaoRepository {
	return &movimentacaoRepo{db: db}
}

func (r *movimentacaoRepo) Append(ctx context.Context, m *model.Movimentacao) error {
	if m.Qtd <= 0 {
		return apperror.NewValidation("quantity", "deve ser maior que zero")
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.NewPersistencia("append movimentação", err)
	}
	return nil
}

func (r *movimentacaoRepo) AppendBatchTx(tx *gorm.DB, movs []*model.Movimentacao) error {
	for _, m := range movs {
		if m.Qtd <= 0 {
			return apperror.NewValidation("quantity", "deve ser maior que zero")
		}
	}
	// Row-by-row inside the tx keeps mov_id assignment in batch order.
	for _, m := range movs {
		if err := tx.Create(m).Error; err != nil {
			return apperror.NewPersistencia("append lote de movimentações", err)
		}
	}
	return nil
}

// ListAll returns the log in append order — mov_id order is the only order
// the log guarantees or needs.
func (r *movimentacaoRepo) ListAll(ctx context.Context, filter MovimentacaoFilter) ([]model.Movimentacao, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movimentacao{})
	if filter.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *filter.UsuarioID)
	}
	if filter.BrindeID != nil {
		q = q.Where("brinde_id = ?", *filter.BrindeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperror.NewPersistencia("contar movimentações", err)
	}

	var movs []model.Movimentacao
	if err := q.Order("mov_id ASC").Find(&movs).Error; err != nil {
		return nil, 0, apperror.NewPersistencia("listar movimentações", err)
	}
	return movs, total, nil
}

func (r *movimentacaoRepo) FindByID(ctx context.Context, movID uint64) (*model.Movimentacao, error) {
	var m model.Movimentacao
	err := r.db.WithContext(ctx).Preload("Brinde").First(&m, movID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNaoEncontrado("movimentação", movID)
	}
	if err != nil {
		return nil, apperror.NewPersistencia("buscar movimentação", err)
	}
	return &m, nil
}

func (r *movimentacaoRepo) FindByIDTx(tx *gorm.DB, movID uint64) (*model.Movimentacao, error) {
	var m model.Movimentacao
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, movID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNaoEncontrado("movimentação", movID)
	}
	if err != nil {
		return nil, apperror.NewPersistencia("buscar movimentação", err)
	}
	return &m, nil
}

func (r *movimentacaoRepo) UpdateStatusTx(tx *gorm.DB, movID uint64, status string) error {
	res := tx.Model(&model.Movimentacao{}).Where("mov_id = ?", movID).Update("status", status)
	if res.Error != nil {
		return apperror.NewPersistencia("atualizar status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NewNaoEncontrado("movimentação", movID)
	}
	return nil
}

func (r *movimentacaoRepo) SomarConfirmadas(ctx context.Context, brindeID uint) (int, int, error) {
	type linha struct {
		Tipo  string
		Total int
	}
	var linhas []linha
	err := r.db.WithContext(ctx).Model(&model.Movimentacao{}).
		Select("tipo, COALESCE(SUM(qtd), 0) AS total").
		Where("brinde_id = ? AND status = ?", brindeID, model.MovStatusConfirmed).
		Group("tipo").
		Scan(&linhas).Error
	if err != nil {
		return 0, 0, apperror.NewPersistencia("somar movimentações confirmadas", err)
	}

	var saidas, entradas int
	for _, l := range linhas {
		switch l.Tipo {
		case model.MovTipoOut:
			saidas = l.Total
		case model.MovTipoIn:
			entradas = l.Total
		}
	}
	return saidas, entradas, nil
}

func (r *movimentacaoRepo) SomarConfirmadasTodas(ctx context.Context) (map[uint]SaldoMovimentacoes, error) {
	type linha struct {
		BrindeID uint
		Tipo     string
		Total    int
	}
	var linhas []linha
	err := r.db.WithContext(ctx).Model(&model.Movimentacao{}).
		Select("brinde_id, tipo, COALESCE(SUM(qtd), 0) AS total").
		Where("status = ?", model.MovStatusConfirmed).
		Group("brinde_id, tipo").
		Scan(&linhas).Error
	if err != nil {
		return nil, apperror.NewPersistencia("somar movimentações confirmadas", err)
	}

	saldos := make(map[uint]SaldoMovimentacoes, len(linhas))
	for _, l := range linhas {
		s := saldos[l.BrindeID]
		switch l.Tipo {
		case model.MovTipoOut:
			s.Saidas = l.Total
		case model.MovTipoIn:
			s.Entradas = l.Total
		}
		saldos[l.BrindeID] = s
	}
	return saldos, nil
}

func (r *movimentacaoRepo) SomarReservas(ctx context.Context, brindeID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&model.Movimentacao{}).
		Select("COALESCE(SUM(qtd), 0)").
		Where("brinde_id = ? AND tipo = ? AND status = ?",
			brindeID, model.MovTipoOut, model.MovStatusProcessing).
		Scan(&total).Error
	if err != nil {
		return 0, apperror.NewPersistencia("somar reservas", err)
	}
	return total, nil
}

func (r *movimentacaoRepo) ListarProcessandoAntesDe(ctx context.Context, cutoff time.Time, limit int) ([]model.Movimentacao, error) {
	var movs []model.Movimentacao
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.MovStatusProcessing, cutoff).
		Order("mov_id ASC").
		Limit(limit).
		Find(&movs).Error
	if err != nil {
		return nil, apperror.NewPersistencia("listar reservas expiradas", err)
	}
	return movs, nil
}

func (r *movimentacaoRepo) DB() *gorm.DB { return r.db }
