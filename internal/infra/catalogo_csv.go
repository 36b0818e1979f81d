package infra

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"simplifique/internal/model"

	"github.com/rs/zerolog/log"
)

// ImportarCatalogo reads the semicolon-delimited catalog flat file and returns
// the variants it declares. Rows with a non-positive id or empty name are
// skipped (the file historically carries trailing garbage lines). Columns are
// resolved by header name so the file can gain columns without breaking the
// importer.
func ImportarCatalogo(path string) ([]model.Brinde, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalogo: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1 // ragged rows tolerated, validated per-field below
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalogo: parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalogo: %s has no data rows", path)
	}

	// Header-keyed column lookup, case-insensitive.
	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	campo := func(row []string, nome string) string {
		i, ok := col[nome]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	inteiro := func(row []string, nome string) int {
		n, _ := strconv.Atoi(campo(row, nome))
		return n
	}

	var brindes []model.Brinde
	descartadas := 0
	for _, row := range rows[1:] {
		id := inteiro(row, "id")
		nome := campo(row, "nome")
		if id <= 0 || nome == "" {
			descartadas++
			continue
		}

		b := model.Brinde{
			ID:             uint(id),
			ProdutoID:      uint(inteiro(row, "product_id")),
			SKU:            campo(row, "sku"),
			Nome:           nome,
			Descricao:      campo(row, "descricao"),
			Detalhes:       campo(row, "detalhes"),
			Categoria:      campo(row, "categoria"),
			CustoPontos:    inteiro(row, "custo"),
			EstoqueInicial: inteiro(row, "estoque_inicial"),
			Tags:           campo(row, "tags"),
			Ativo:          parseAtivo(campo(row, "ativo")),
		}
		if t := campo(row, "tamanho"); t != "" {
			b.Tamanho = &t
		}
		if u := campo(row, "url"); u != "" {
			b.ImagemURL = &u
		}
		brindes = append(brindes, b)
	}

	log.Info().
		Str("arquivo", path).
		Int("variantes", len(brindes)).
		Int("descartadas", descartadas).
		Msg("catálogo importado")
	return brindes, nil
}

func parseAtivo(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "sim", "s", "ativo":
		return true
	}
	return false
}
