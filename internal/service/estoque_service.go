package service

import (
	"context"

	"simplifique/internal/model"
	"simplifique/internal/repository"
)

// EstoqueService is the stock reconciler: current stock for a variant is the
// catalog baseline replayed against confirmed movements only. It is computed
// from the log on every call — there is no running counter to drift.
type EstoqueService interface {
	EstoqueAtual(ctx context.Context, b *model.Brinde) (int, error)
	EstoqueAtualMap(ctx context.Context, brindes []model.Brinde) (map[uint]int, error)
	// Disponivel subtracts pending OUT reservations from the reconciled
	// stock. Redemption validation uses this, not EstoqueAtual, so that two
	// concurrent reservations cannot oversell the same units.
	Disponivel(ctx context.Context, b *model.Brinde) (int, error)
}

type estoqueService struct {
	movRepo repository.MovimentacaoRepository
}

func NewEstoqueService(movRepo repository.MovimentacaoRepository) EstoqueService {
	return &estoqueService{movRepo: movRepo}
}

func (s *estoqueService) EstoqueAtual(ctx context.Context, b *model.Brinde) (int, error) {
	saidas, entradas, err := s.movRepo.SomarConfirmadas(ctx, b.ID)
	if err != nil {
		return 0, err
	}
	return clampEstoque(b.EstoqueInicial, saidas, entradas), nil
}

func (s *estoqueService) EstoqueAtualMap(ctx context.Context, brindes []model.Brinde) (map[uint]int, error) {
	saldos, err := s.movRepo.SomarConfirmadasTodas(ctx)
	if err != nil {
		return nil, err
	}
	estoques := make(map[uint]int, len(brindes))
	for _, b := range brindes {
		saldo := saldos[b.ID]
		estoques[b.ID] = clampEstoque(b.EstoqueInicial, saldo.Saidas, saldo.Entradas)
	}
	return estoques, nil
}

func (s *estoqueService) Disponivel(ctx context.Context, b *model.Brinde) (int, error) {
	atual, err := s.EstoqueAtual(ctx, b)
	if err != nil {
		return 0, err
	}
	reservas, err := s.movRepo.SomarReservas(ctx, b.ID)
	if err != nil {
		return 0, err
	}
	disponivel := atual - reservas
	if disponivel < 0 {
		disponivel = 0
	}
	return disponivel, nil
}

// clampEstoque floors at zero: inconsistent data must never surface as
// negative stock.
func clampEstoque(inicial, saidas, entradas int) int {
	atual := inicial - saidas + entradas
	if atual < 0 {
		return 0
	}
	return atual
}
