package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// VentaService wraps the /ventas endpoints.
type VentaService struct {
	client *Client
}

type VentaListParams struct {
	Page        int
	Limit       int
	Estado      string
	ClienteID   int64
	FechaInicio string
	FechaFin    string
}

func (p VentaListParams) values() url.Values {
	v := ListParams{Page: p.Page, Limit: p.Limit}.values()
	if p.Estado != "" {
		v.Set("estado", p.Estado)
	}
	if p.ClienteID > 0 {
		v.Set("clienteId", strconv.FormatInt(p.ClienteID, 10))
	}
	if p.FechaInicio != "" {
		v.Set("fechaInicio", p.FechaInicio)
	}
	if p.FechaFin != "" {
		v.Set("fechaFin", p.FechaFin)
	}
	return v
}

type ventasPayload struct {
	Ventas     []domain.Venta    `json:"ventas"`
	Pagination domain.Pagination `json:"pagination"`
}

type ventaPayload struct {
	Venta domain.Venta `json:"venta"`
}

func (s *VentaService) List(ctx context.Context, params VentaListParams) ([]domain.Venta, domain.Pagination, error) {
	var payload ventasPayload
	if err := s.client.get(ctx, "/ventas", params.values(), &payload); err != nil {
		return nil, domain.Pagination{}, err
	}
	if payload.Ventas == nil {
		payload.Ventas = []domain.Venta{}
	}
	return payload.Ventas, payload.Pagination, nil
}

func (s *VentaService) Get(ctx context.Context, id int64) (*domain.Venta, error) {
	var payload ventaPayload
	if err := s.client.get(ctx, fmt.Sprintf("/ventas/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Venta, nil
}

func (s *VentaService) Create(ctx context.Context, input domain.CreateVentaInput) (*domain.Venta, error) {
	var payload ventaPayload
	if err := s.client.post(ctx, "/ventas", input, &payload); err != nil {
		return nil, err
	}
	return &payload.Venta, nil
}

// Anular voids a sale. The server keeps the record and flips its state.
func (s *VentaService) Anular(ctx context.Context, id int64) (*domain.Venta, error) {
	var payload ventaPayload
	if err := s.client.patch(ctx, fmt.Sprintf("/ventas/%d/anular", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Venta, nil
}
