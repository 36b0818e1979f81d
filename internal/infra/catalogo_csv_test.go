package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func escreverCatalogo(t *testing.T, conteudo string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Data_Brindes.txt")
	require.NoError(t, os.WriteFile(path, []byte(conteudo), 0644))
	return path
}

func TestImportarCatalogo(t *testing.T) {
	path := escreverCatalogo(t, `ID;PRODUCT_ID;SKU;Nome;Descricao;Detalhes;Categoria;Tamanho;Custo;Estoque_Inicial;URL;Ativo;Tags
101;10;CAM-P;Camiseta Polo - P;Polo de algodão;100% algodão;Vestuário;P;300;12;https://cdn/camiseta.png;1;roupa
102;10;CAM-M;Camiseta Polo - M;Polo de algodão;100% algodão;Vestuário;M;300;8;;1;roupa
200;20;CAN-01;Caneca;Caneca de cerâmica;;Cozinha;;150;30;;0;
0;99;XX;Linha Invalida;;;;;10;5;;1;
103;10;;;;;;;;;;;`)

	brindes, err := ImportarCatalogo(path)
	require.NoError(t, err)
	require.Len(t, brindes, 3, "rows with non-positive id or empty name are dropped")

	polo := brindes[0]
	assert.Equal(t, uint(101), polo.ID)
	assert.Equal(t, uint(10), polo.ProdutoID)
	assert.Equal(t, "CAM-P", polo.SKU)
	assert.Equal(t, "Camiseta Polo - P", polo.Nome)
	require.NotNil(t, polo.Tamanho)
	assert.Equal(t, "P", *polo.Tamanho)
	assert.Equal(t, 300, polo.CustoPontos)
	assert.Equal(t, 12, polo.EstoqueInicial)
	require.NotNil(t, polo.ImagemURL)
	assert.Equal(t, "https://cdn/camiseta.png", *polo.ImagemURL)
	assert.True(t, polo.Ativo)

	caneca := brindes[2]
	assert.Nil(t, caneca.Tamanho)
	assert.Nil(t, caneca.ImagemURL)
	assert.False(t, caneca.Ativo)
}

func TestImportarCatalogo_ArquivoVazio(t *testing.T) {
	path := escreverCatalogo(t, "ID;Nome\n")
	_, err := ImportarCatalogo(path)
	assert.Error(t, err)
}

func TestImportarCatalogo_ArquivoInexistente(t *testing.T) {
	_, err := ImportarCatalogo("/nao/existe.txt")
	assert.Error(t, err)
}

func TestParseAtivo(t *testing.T) {
	assert.True(t, parseAtivo("1"))
	assert.True(t, parseAtivo("Sim"))
	assert.True(t, parseAtivo("true"))
	assert.False(t, parseAtivo("0"))
	assert.False(t, parseAtivo(""))
	assert.False(t, parseAtivo("nao"))
}
