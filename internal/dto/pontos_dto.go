package dto

type PontoResponse struct {
	ID            uint    `json:"id"`
	Tipo          string  `json:"tipo"`
	Quantidade    int     `json:"quantidade"`
	Status        string  `json:"status"`
	Origem        string  `json:"origem"`
	ReferenciaID  *string `json:"referencia_id"`
	Observacao    string  `json:"observacao"`
	DataMovimento string  `json:"data_movimento"`
	RegistradoPor string  `json:"registrado_por"`
}

// SaldoResponse is the derived balance view over the points ledger.
type SaldoResponse struct {
	SaldoAtual      int             `json:"saldo_atual"`
	EmProcessamento int             `json:"em_processamento"`
	Total           int             `json:"total"`
	Retirado        int             `json:"retirado"`
	Historico       []PontoResponse `json:"historico"`
}
