package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// ClienteService wraps the /clientes endpoints.
type ClienteService struct {
	client *Client
}

// ListParams are the shared pagination query parameters.
type ListParams struct {
	Page  int
	Limit int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

type clientesPayload struct {
	Clientes   []domain.Cliente  `json:"clientes"`
	Pagination domain.Pagination `json:"pagination"`
}

type clientePayload struct {
	Cliente domain.Cliente `json:"cliente"`
}

// List fetches one page of clients. A missing data field is treated as an
// empty result, not an error.
func (s *ClienteService) List(ctx context.Context, params ListParams) ([]domain.Cliente, domain.Pagination, error) {
	var payload clientesPayload
	if err := s.client.get(ctx, "/clientes", params.values(), &payload); err != nil {
		return nil, domain.Pagination{}, err
	}
	if payload.Clientes == nil {
		payload.Clientes = []domain.Cliente{}
	}
	return payload.Clientes, payload.Pagination, nil
}

// Search looks up clients by name or phone.
func (s *ClienteService) Search(ctx context.Context, query string) ([]domain.Cliente, error) {
	v := url.Values{}
	v.Set("q", query)
	var payload clientesPayload
	if err := s.client.get(ctx, "/clientes/buscar", v, &payload); err != nil {
		return nil, err
	}
	if payload.Clientes == nil {
		payload.Clientes = []domain.Cliente{}
	}
	return payload.Clientes, nil
}

func (s *ClienteService) Get(ctx context.Context, id int64) (*domain.Cliente, error) {
	var payload clientePayload
	if err := s.client.get(ctx, fmt.Sprintf("/clientes/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Cliente, nil
}

func (s *ClienteService) Create(ctx context.Context, input domain.CreateClienteInput) (*domain.Cliente, error) {
	var payload clientePayload
	if err := s.client.post(ctx, "/clientes", input, &payload); err != nil {
		return nil, err
	}
	return &payload.Cliente, nil
}

func (s *ClienteService) Update(ctx context.Context, id int64, input domain.UpdateClienteInput) (*domain.Cliente, error) {
	var payload clientePayload
	if err := s.client.put(ctx, fmt.Sprintf("/clientes/%d", id), input, &payload); err != nil {
		return nil, err
	}
	return &payload.Cliente, nil
}

func (s *ClienteService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/clientes/%d", id))
}

// Historial fetches a client's sale history with aggregated statistics.
func (s *ClienteService) Historial(ctx context.Context, id int64) (*domain.ClienteHistorial, error) {
	var payload domain.ClienteHistorial
	if err := s.client.get(ctx, fmt.Sprintf("/clientes/%d/ventas", id), nil, &payload); err != nil {
		return nil, err
	}
	if payload.Ventas == nil {
		payload.Ventas = []domain.Venta{}
	}
	return &payload, nil
}
