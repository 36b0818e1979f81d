package service

import (
	"context"
	"sync"
	"time"

	apperror "simplifique/internal/errors"
	"simplifique/internal/model"
	"simplifique/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so services run their
// transaction bodies directly; batch appends mimic rollback by writing
// nothing on failure.

type stubMovRepo struct {
	mu         sync.Mutex
	movs       []*model.Movimentacao
	nextID     uint64
	failAppend bool
}

func newStubMovRepo() *stubMovRepo { return &stubMovRepo{} }

func (r *stubMovRepo) Append(_ context.Context, m *model.Movimentacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.append(m)
}

func (r *stubMovRepo) append(m *model.Movimentacao) error {
	if m.Qtd <= 0 {
		return apperror.NewValidation("quantity", "deve ser maior que zero")
	}
	if r.failAppend {
		return apperror.NewPersistencia("append movimentação", gorm.ErrInvalidDB)
	}
	r.nextID++
	m.MovID = r.nextID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movs = append(r.movs, m)
	return nil
}

func (r *stubMovRepo) AppendBatchTx(_ *gorm.DB, movs []*model.Movimentacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range movs {
		if m.Qtd <= 0 {
			return apperror.NewValidation("quantity", "deve ser maior que zero")
		}
	}
	if r.failAppend {
		return apperror.NewPersistencia("append lote de movimentações", gorm.ErrInvalidDB)
	}
	for _, m := range movs {
		if err := r.append(m); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubMovRepo) ListAll(_ context.Context, filter repository.MovimentacaoFilter) ([]model.Movimentacao, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Movimentacao
	for _, m := range r.movs {
		if filter.UsuarioID != nil && m.UsuarioID != *filter.UsuarioID {
			continue
		}
		if filter.BrindeID != nil && m.BrindeID != *filter.BrindeID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovRepo) find(movID uint64) (*model.Movimentacao, error) {
	for _, m := range r.movs {
		if m.MovID == movID {
			return m, nil
		}
	}
	return nil, apperror.NewNaoEncontrado("movimentação", movID)
}

func (r *stubMovRepo) FindByID(_ context.Context, movID uint64) (*model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(movID)
}

func (r *stubMovRepo) FindByIDTx(_ *gorm.DB, movID uint64) (*model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(movID)
}

func (r *stubMovRepo) UpdateStatusTx(_ *gorm.DB, movID uint64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.find(movID)
	if err != nil {
		return err
	}
	m.Status = status
	return nil
}

func (r *stubMovRepo) SomarConfirmadas(_ context.Context, brindeID uint) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var saidas, entradas int
	for _, m := range r.movs {
		if m.BrindeID != brindeID || m.Status != model.MovStatusConfirmed {
			continue
		}
		switch m.Tipo {
		case model.MovTipoOut:
			saidas += m.Qtd
		case model.MovTipoIn:
			entradas += m.Qtd
		}
	}
	return saidas, entradas, nil
}

func (r *stubMovRepo) SomarConfirmadasTodas(_ context.Context) (map[uint]repository.SaldoMovimentacoes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	saldos := make(map[uint]repository.SaldoMovimentacoes)
	for _, m := range r.movs {
		if m.Status != model.MovStatusConfirmed {
			continue
		}
		s := saldos[m.BrindeID]
		switch m.Tipo {
		case model.MovTipoOut:
			s.Saidas += m.Qtd
		case model.MovTipoIn:
			s.Entradas += m.Qtd
		}
		saldos[m.BrindeID] = s
	}
	return saldos, nil
}

func (r *stubMovRepo) SomarReservas(_ context.Context, brindeID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int
	for _, m := range r.movs {
		if m.BrindeID == brindeID && m.Tipo == model.MovTipoOut && m.Status == model.MovStatusProcessing {
			total += m.Qtd
		}
	}
	return total, nil
}

func (r *stubMovRepo) ListarProcessandoAntesDe(_ context.Context, cutoff time.Time, limit int) ([]model.Movimentacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Movimentacao
	for _, m := range r.movs {
		if m.Status == model.MovStatusProcessing && m.CreatedAt.Before(cutoff) {
			out = append(out, *m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *stubMovRepo) DB() *gorm.DB { return nil }

type stubBrindeRepo struct {
	mu      sync.Mutex
	brindes map[uint]*model.Brinde
}

func newStubBrindeRepo(brindes ...*model.Brinde) *stubBrindeRepo {
	r := &stubBrindeRepo{brindes: make(map[uint]*model.Brinde)}
	for _, b := range brindes {
		r.brindes[b.ID] = b
	}
	return r
}

func (r *stubBrindeRepo) FindByID(_ context.Context, id uint) (*model.Brinde, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.brindes[id]
	if !ok {
		return nil, apperror.NewNaoEncontrado("variante", id)
	}
	return b, nil
}

func (r *stubBrindeRepo) ListAtivos(_ context.Context) ([]model.Brinde, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint, 0, len(r.brindes))
	for id := range r.brindes {
		ids = append(ids, id)
	}
	// deterministic id order
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	var out []model.Brinde
	for _, id := range ids {
		if r.brindes[id].Ativo {
			out = append(out, *r.brindes[id])
		}
	}
	return out, nil
}

func (r *stubBrindeRepo) Upsert(_ context.Context, b *model.Brinde) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.brindes[b.ID] = b
	return nil
}

func (r *stubBrindeRepo) DB() *gorm.DB { return nil }

type stubPontoRepo struct {
	pontos []model.Ponto
}

func (r *stubPontoRepo) ListarPorUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Ponto, error) {
	var out []model.Ponto
	for _, p := range r.pontos {
		if p.UsuarioID == usuarioID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPontoRepo) Create(_ context.Context, p *model.Ponto) error {
	r.pontos = append(r.pontos, *p)
	return nil
}

type stubUsuarioRepo struct {
	mu       sync.Mutex
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo(usuarios ...*model.Usuario) *stubUsuarioRepo {
	r := &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
	for _, u := range usuarios {
		r.usuarios[u.ID] = u
	}
	return r
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.usuarios {
		if u.Username == username && u.Ativo {
			return u, nil
		}
	}
	return nil, apperror.NewNaoEncontrado("usuário", username)
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return nil, apperror.NewNaoEncontrado("usuário", id)
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Ativo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Desativar(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usuarios[id]
	if !ok {
		return apperror.NewNaoEncontrado("usuário", id)
	}
	u.Ativo = false
	return nil
}

// stubEnqueuer records voucher jobs dispatched on confirm.
type stubEnqueuer struct {
	mu     sync.Mutex
	movIDs []uint64
}

func (e *stubEnqueuer) EnqueueVoucher(_ context.Context, movID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.movIDs = append(e.movIDs, movID)
	return nil
}
