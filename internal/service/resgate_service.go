package service

import (
	"context"
	"sync"

	"simplifique/internal/dto"
	apperror "simplifique/internal/errors"
	"simplifique/internal/model"
	"simplifique/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogoCacheKey holds the cached grouped-catalog JSON; confirming a
// redemption invalidates it because confirmed movements change stockCurrent.
const CatalogoCacheKey = "catalogo:produtos"

// VoucherEnqueuer abstracts the async job dispatcher so the worker package
// can depend on this package without a cycle. nil disables dispatch.
type VoucherEnqueuer interface {
	EnqueueVoucher(ctx context.Context, movID uint64) error
}

// ResgateService runs the two-phase redemption workflow:
//
//	reserve — validate the whole batch against availability re-read at
//	          validation time, then append OUT movements in processing
//	          state, all-or-nothing
//	confirm — promote a single movement processing → confirmed
//	cancel  — processing → canceled (user abandon or expiry cron)
//
// A single mutex serializes every state-changing call so validation and
// reservation never interleave between two requests (single-writer
// discipline within one process; multi-process deployments need the
// equivalent exclusivity from the store).
type ResgateService interface {
	CriarResgate(ctx context.Context, usuarioID uuid.UUID, req dto.CriarResgateRequest) (*dto.ResgateResponse, error)
	ConfirmarResgate(ctx context.Context, movID uint64) (*dto.MovimentacaoResponse, error)
	CancelarResgate(ctx context.Context, movID uint64) (*dto.MovimentacaoResponse, error)
	ListarMovimentacoes(ctx context.Context, filter repository.MovimentacaoFilter) (*dto.MovimentacaoListResponse, error)
}

type resgateService struct {
	movRepo    repository.MovimentacaoRepository
	brindeRepo repository.BrindeRepository
	estoque    EstoqueService
	vouchers   VoucherEnqueuer // nil in unit tests
	rdb        *redis.Client   // nil in unit tests
	mu         sync.Mutex
}

func NewResgateService(
	movRepo repository.MovimentacaoRepository,
	brindeRepo repository.BrindeRepository,
	estoque EstoqueService,
	vouchers VoucherEnqueuer,
	rdb *redis.Client,
) ResgateService {
	return &resgateService{
		movRepo:    movRepo,
		brindeRepo: brindeRepo,
		estoque:    estoque,
		vouchers:   vouchers,
		rdb:        rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *resgateService) CriarResgate(ctx context.Context, usuarioID uuid.UUID, req dto.CriarResgateRequest) (*dto.ResgateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Pre-flight: resolve every variant and re-read availability now —
	// never trust a caller-supplied stock figure. Any failure aborts the
	// whole batch before anything is written.
	type linhaResolvida struct {
		brinde      *model.Brinde
		quantidade  int
		pontosTotal int
	}

	resolvidas := make([]linhaResolvida, 0, len(req.Items))
	reservadoNoLote := make(map[uint]int)
	custoLote := 0

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidation("quantity", "deve ser maior que zero")
		}
		b, err := s.brindeRepo.FindByID(ctx, item.VariantID)
		if err != nil {
			return nil, err
		}
		if !b.Ativo {
			return nil, apperror.NewNaoEncontrado("variante", item.VariantID)
		}
		if b.CustoPontos <= 0 {
			return nil, &apperror.CustoInvalidoError{BrindeID: b.ID, Custo: b.CustoPontos}
		}

		disponivel, err := s.estoque.Disponivel(ctx, b)
		if err != nil {
			return nil, err
		}
		// Earlier lines of this batch also claim units.
		disponivel -= reservadoNoLote[b.ID]
		if disponivel < item.Quantity {
			return nil, &apperror.EstoqueInsuficienteError{
				BrindeID:   b.ID,
				Solicitado: item.Quantity,
				Disponivel: disponivel,
			}
		}
		reservadoNoLote[b.ID] += item.Quantity

		pontos := b.CustoPontos * item.Quantity
		custoLote += pontos
		resolvidas = append(resolvidas, linhaResolvida{brinde: b, quantidade: item.Quantity, pontosTotal: pontos})
	}

	if req.TotalPoints > 0 && req.TotalPoints != custoLote {
		return nil, apperror.NewValidation("totalPoints", "não confere com o custo calculado do lote")
	}

	// 2. Reserve: one OUT/processing movement per line item, committed as a
	// single transaction — either every reservation exists or none does.
	movs := make([]*model.Movimentacao, 0, len(resolvidas))
	for _, l := range resolvidas {
		movs = append(movs, &model.Movimentacao{
			UsuarioID:   usuarioID,
			BrindeID:    l.brinde.ID,
			ProdutoID:   l.brinde.ProdutoID,
			SKU:         l.brinde.SKU,
			Qtd:         l.quantidade,
			PontosTotal: l.pontosTotal,
			Tipo:        model.MovTipoOut,
			Status:      model.MovStatusProcessing,
		})
	}

	if err := runTx(ctx, s.movRepo.DB(), func(tx *gorm.DB) error {
		return s.movRepo.AppendBatchTx(tx, movs)
	}); err != nil {
		return nil, err
	}

	resp := &dto.ResgateResponse{OK: true}
	for _, m := range movs {
		resp.Movimentacoes = append(resp.Movimentacoes, movToResponse(m))
	}

	log.Info().
		Str("usuario_id", usuarioID.String()).
		Int("itens", len(movs)).
		Int("pontos", custoLote).
		Msg("resgate reservado")
	return resp, nil
}

func (s *resgateService) ConfirmarResgate(ctx context.Context, movID uint64) (*dto.MovimentacaoResponse, error) {
	m, err := s.transicionar(ctx, movID, model.MovStatusConfirmed)
	if err != nil {
		return nil, err
	}

	s.invalidarCacheCatalogo(ctx)

	// Voucher generation is best-effort: a queue hiccup must not undo a
	// confirmed redemption.
	if s.vouchers != nil {
		if err := s.vouchers.EnqueueVoucher(ctx, movID); err != nil {
			log.Warn().Err(err).Uint64("mov_id", movID).Msg("falha ao enfileirar voucher")
		}
	}

	log.Info().Uint64("mov_id", movID).Msg("resgate confirmado")
	resp := movToResponse(m)
	return &resp, nil
}

func (s *resgateService) CancelarResgate(ctx context.Context, movID uint64) (*dto.MovimentacaoResponse, error) {
	m, err := s.transicionar(ctx, movID, model.MovStatusCanceled)
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("mov_id", movID).Msg("resgate cancelado")
	resp := movToResponse(m)
	return &resp, nil
}

// transicionar moves a movement out of processing inside a row-locked
// transaction. Terminal movements are immutable: re-confirming or
// re-canceling fails without touching the record.
func (s *resgateService) transicionar(ctx context.Context, movID uint64, novoStatus string) (*model.Movimentacao, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var atualizada *model.Movimentacao
	err := runTx(ctx, s.movRepo.DB(), func(tx *gorm.DB) error {
		m, err := s.movRepo.FindByIDTx(tx, movID)
		if err != nil {
			return err
		}
		if m.Terminal() {
			return &apperror.TransicaoInvalidaError{MovID: movID, Status: m.Status}
		}
		if err := s.movRepo.UpdateStatusTx(tx, movID, novoStatus); err != nil {
			return err
		}
		m.Status = novoStatus
		atualizada = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return atualizada, nil
}

func (s *resgateService) ListarMovimentacoes(ctx context.Context, filter repository.MovimentacaoFilter) (*dto.MovimentacaoListResponse, error) {
	movs, total, err := s.movRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.MovimentacaoListResponse{Total: total, Data: make([]dto.MovimentacaoResponse, 0, len(movs))}
	for i := range movs {
		resp.Data = append(resp.Data, movToResponse(&movs[i]))
	}
	return resp, nil
}

func (s *resgateService) invalidarCacheCatalogo(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CatalogoCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("falha ao invalidar cache do catálogo")
	}
}

func movToResponse(m *model.Movimentacao) dto.MovimentacaoResponse {
	return dto.MovimentacaoResponse{
		MovID:       m.MovID,
		UserID:      m.UsuarioID.String(),
		VariantID:   m.BrindeID,
		ProductID:   m.ProdutoID,
		SKU:         m.SKU,
		Quantity:    m.Qtd,
		PointsTotal: m.PontosTotal,
		Type:        m.Tipo,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
