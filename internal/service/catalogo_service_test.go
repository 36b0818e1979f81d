package service

import (
	"context"
	"testing"

	apperror "simplifique/internal/errors"
	"simplifique/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func variante(id, produtoID uint, nome string, tamanho *string, custo, estoque int) *model.Brinde {
	return &model.Brinde{
		ID: id, ProdutoID: produtoID, SKU: "SKU", Nome: nome, Tamanho: tamanho,
		CustoPontos: custo, EstoqueInicial: estoque, Ativo: true,
	}
}

func TestNomeBase_SufixosDeTamanho(t *testing.T) {
	assert.Equal(t, "Camiseta Polo", nomeBase("Camiseta Polo - P"))
	assert.Equal(t, "Camiseta Polo", nomeBase("Camiseta Polo - GG"))
	assert.Equal(t, "Caneca", nomeBase("Caneca"))
	// " - GG" must not be eaten as " - G" leaving a dangling "G".
	assert.NotEqual(t, "Camiseta Polo G", nomeBase("Camiseta Polo - GG"))
}

func TestListarVariacoes_AnotaEstoqueAtual(t *testing.T) {
	movRepo := newStubMovRepo()
	ctx := context.Background()
	require.NoError(t, movRepo.Append(ctx, mov(1, 3, model.MovTipoOut, model.MovStatusConfirmed)))

	brindeRepo := newStubBrindeRepo(
		variante(1, 10, "Caneca", nil, 150, 8),
	)
	svc := NewCatalogoService(brindeRepo, NewEstoqueService(movRepo))

	variacoes, err := svc.ListarVariacoes(ctx)
	require.NoError(t, err)
	require.Len(t, variacoes, 1)
	assert.Equal(t, 8, variacoes[0].StockInitial)
	assert.Equal(t, 5, variacoes[0].StockCurrent)
}

func TestListarVariacoes_IgnoraInativas(t *testing.T) {
	inativa := variante(2, 10, "Caneca Velha", nil, 100, 3)
	inativa.Ativo = false
	brindeRepo := newStubBrindeRepo(variante(1, 10, "Caneca", nil, 150, 8), inativa)
	svc := NewCatalogoService(brindeRepo, NewEstoqueService(newStubMovRepo()))

	variacoes, err := svc.ListarVariacoes(context.Background())
	require.NoError(t, err)
	require.Len(t, variacoes, 1)
	assert.Equal(t, uint(1), variacoes[0].ID)
}

func TestAgruparPorProduto_CartaoDerivado(t *testing.T) {
	brindeRepo := newStubBrindeRepo(
		variante(1, 10, "Camiseta Polo - P", ptr("P"), 300, 4),
		variante(2, 10, "Camiseta Polo - M", ptr("M"), 250, 6),
		variante(3, 10, "Camiseta Polo - GG", ptr("GG"), 300, 0),
		variante(4, 20, "Caneca", nil, 150, 9),
	)
	svc := NewCatalogoService(brindeRepo, NewEstoqueService(newStubMovRepo()))

	produtos, err := svc.AgruparPorProduto(context.Background())
	require.NoError(t, err)
	require.Len(t, produtos, 2)

	polo := produtos[0]
	assert.Equal(t, uint(10), polo.ProductID)
	assert.Equal(t, "Camiseta Polo", polo.Name)
	assert.Equal(t, 250, polo.PointsCost) // minimum across variants
	assert.Equal(t, 10, polo.Stock)       // 4 + 6 + 0
	assert.Equal(t, []string{"GG", "M", "P"}, polo.Sizes)
	assert.Len(t, polo.Variants, 3)

	caneca := produtos[1]
	assert.Equal(t, "Caneca", caneca.Name)
	assert.Empty(t, caneca.Sizes)
	assert.Equal(t, 9, caneca.Stock)
}

func TestEstoqueVariacao(t *testing.T) {
	movRepo := newStubMovRepo()
	ctx := context.Background()
	require.NoError(t, movRepo.Append(ctx, mov(1, 2, model.MovTipoOut, model.MovStatusConfirmed)))

	brindeRepo := newStubBrindeRepo(variante(1, 10, "Caneca", nil, 150, 8))
	svc := NewCatalogoService(brindeRepo, NewEstoqueService(movRepo))

	resp, err := svc.EstoqueVariacao(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.VariantID)
	assert.Equal(t, 6, resp.StockCurrent)

	_, err = svc.EstoqueVariacao(ctx, 99)
	var naoEnc *apperror.NaoEncontradoError
	require.ErrorAs(t, err, &naoEnc)
}
