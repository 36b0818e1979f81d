package service

import (
	"context"

	"simplifique/internal/dto"
	"simplifique/internal/model"
	"simplifique/internal/repository"

	"github.com/google/uuid"
)

// PontosService derives point balances by replaying the user's points
// ledger. The ledger keeps its own status vocabulary (confirmado/
// processando) — see DESIGN.md for why it is not merged with the gift
// movement log.
type PontosService interface {
	CalcularSaldos(ctx context.Context, usuarioID uuid.UUID) (*dto.SaldoResponse, error)
}

type pontosService struct {
	repo repository.PontoRepository
}

func NewPontosService(repo repository.PontoRepository) PontosService {
	return &pontosService{repo: repo}
}

func (s *pontosService) CalcularSaldos(ctx context.Context, usuarioID uuid.UUID) (*dto.SaldoResponse, error) {
	pontos, err := s.repo.ListarPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SaldoResponse{Historico: make([]dto.PontoResponse, 0, len(pontos))}
	for i := range pontos {
		p := &pontos[i]
		switch {
		case p.Status == model.PontoStatusConfirmado && p.Tipo == model.PontoTipoCredito:
			resp.SaldoAtual += p.Quantidade
			resp.Total += p.Quantidade
		case p.Status == model.PontoStatusConfirmado && p.Tipo == model.PontoTipoDebito:
			resp.SaldoAtual -= p.Quantidade
			resp.Retirado += p.Quantidade
		case p.Status == model.PontoStatusProcessando:
			resp.EmProcessamento += p.Quantidade
		}
		resp.Historico = append(resp.Historico, dto.PontoResponse{
			ID:            p.ID,
			Tipo:          p.Tipo,
			Quantidade:    p.Quantidade,
			Status:        p.Status,
			Origem:        p.Origem,
			ReferenciaID:  p.ReferenciaID,
			Observacao:    p.Observacao,
			DataMovimento: p.DataMovimento.Format("2006-01-02 15:04:05"),
			RegistradoPor: p.RegistradoPor,
		})
	}
	return resp, nil
}
