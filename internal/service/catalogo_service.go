package service

import (
	"context"
	"sort"
	"strings"

	"simplifique/internal/dto"
	"simplifique/internal/repository"
)

// CatalogoService serves the storefront views of the gift catalog: flat
// variants and product cards grouped by produto_id, both annotated with the
// reconciled current stock.
type CatalogoService interface {
	ListarVariacoes(ctx context.Context) ([]dto.VarianteResponse, error)
	AgruparPorProduto(ctx context.Context) ([]dto.ProdutoAgrupadoResponse, error)
	EstoqueVariacao(ctx context.Context, variantID uint) (*dto.EstoqueVarianteResponse, error)
}

type catalogoService struct {
	brindeRepo repository.BrindeRepository
	estoque    EstoqueService
}

func NewCatalogoService(brindeRepo repository.BrindeRepository, estoque EstoqueService) CatalogoService {
	return &catalogoService{brindeRepo: brindeRepo, estoque: estoque}
}

func (s *catalogoService) ListarVariacoes(ctx context.Context) ([]dto.VarianteResponse, error) {
	brindes, err := s.brindeRepo.ListAtivos(ctx)
	if err != nil {
		return nil, err
	}
	estoques, err := s.estoque.EstoqueAtualMap(ctx, brindes)
	if err != nil {
		return nil, err
	}

	variacoes := make([]dto.VarianteResponse, 0, len(brindes))
	for i := range brindes {
		b := &brindes[i]
		variacoes = append(variacoes, dto.VarianteResponse{
			ID:           b.ID,
			ProductID:    b.ProdutoID,
			SKU:          b.SKU,
			Name:         b.Nome,
			Description:  b.Descricao,
			Details:      b.Detalhes,
			Category:     b.Categoria,
			Size:         b.Tamanho,
			PointsCost:   b.CustoPontos,
			StockInitial: b.EstoqueInicial,
			StockCurrent: estoques[b.ID],
			ImageURL:     b.ImagemURL,
		})
	}
	return variacoes, nil
}

// tamanhoSufixos are checked longest-first so " - GG" is not mistaken for " - G".
var tamanhoSufixos = []string{" - GG", " - G", " - M", " - P"}

func nomeBase(nome string) string {
	for _, sufixo := range tamanhoSufixos {
		if strings.HasSuffix(nome, sufixo) {
			return strings.TrimSpace(strings.TrimSuffix(nome, sufixo))
		}
	}
	return nome
}

func (s *catalogoService) AgruparPorProduto(ctx context.Context) ([]dto.ProdutoAgrupadoResponse, error) {
	variacoes, err := s.ListarVariacoes(ctx)
	if err != nil {
		return nil, err
	}

	grupos := make(map[uint]*dto.ProdutoAgrupadoResponse)
	ordem := make([]uint, 0)

	for i := range variacoes {
		v := &variacoes[i]
		g, ok := grupos[v.ProductID]
		if !ok {
			g = &dto.ProdutoAgrupadoResponse{
				ProductID:   v.ProductID,
				Name:        nomeBase(v.Name),
				Description: v.Description,
				Details:     v.Details,
				Category:    v.Category,
				ImageURL:    v.ImageURL,
			}
			grupos[v.ProductID] = g
			ordem = append(ordem, v.ProductID)
		}
		if g.ImageURL == nil && v.ImageURL != nil {
			g.ImageURL = v.ImageURL
		}
		g.Variants = append(g.Variants, dto.VarianteAgrupada{
			ID:           v.ID,
			SKU:          v.SKU,
			Size:         v.Size,
			PointsCost:   v.PointsCost,
			StockCurrent: v.StockCurrent,
			ImageURL:     v.ImageURL,
		})
	}

	// Derived card fields: sorted unique sizes, minimum cost, summed stock.
	produtos := make([]dto.ProdutoAgrupadoResponse, 0, len(ordem))
	for _, pid := range ordem {
		g := grupos[pid]
		vistos := make(map[string]bool)
		for _, v := range g.Variants {
			g.Stock += v.StockCurrent
			if g.PointsCost == 0 || v.PointsCost < g.PointsCost {
				g.PointsCost = v.PointsCost
			}
			if v.Size != nil && *v.Size != "" && !vistos[*v.Size] {
				vistos[*v.Size] = true
				g.Sizes = append(g.Sizes, *v.Size)
			}
		}
		sort.Strings(g.Sizes)
		produtos = append(produtos, *g)
	}
	return produtos, nil
}

func (s *catalogoService) EstoqueVariacao(ctx context.Context, variantID uint) (*dto.EstoqueVarianteResponse, error) {
	b, err := s.brindeRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	atual, err := s.estoque.EstoqueAtual(ctx, b)
	if err != nil {
		return nil, err
	}
	return &dto.EstoqueVarianteResponse{VariantID: b.ID, StockCurrent: atual}, nil
}
