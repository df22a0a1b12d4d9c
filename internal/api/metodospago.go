package api

import (
	"context"
	"fmt"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// MetodoPagoService wraps the /metodos-pago endpoints.
type MetodoPagoService struct {
	client *Client
}

type metodosPagoPayload struct {
	MetodosPago []domain.MetodoPago `json:"metodosPago"`
}

type metodoPagoPayload struct {
	MetodoPago domain.MetodoPago `json:"metodoPago"`
}

// List fetches every payment method. The endpoint is not paginated.
func (s *MetodoPagoService) List(ctx context.Context) ([]domain.MetodoPago, error) {
	var payload metodosPagoPayload
	if err := s.client.get(ctx, "/metodos-pago", nil, &payload); err != nil {
		return nil, err
	}
	if payload.MetodosPago == nil {
		payload.MetodosPago = []domain.MetodoPago{}
	}
	return payload.MetodosPago, nil
}

func (s *MetodoPagoService) Get(ctx context.Context, id int64) (*domain.MetodoPago, error) {
	var payload metodoPagoPayload
	if err := s.client.get(ctx, fmt.Sprintf("/metodos-pago/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.MetodoPago, nil
}

func (s *MetodoPagoService) Create(ctx context.Context, input domain.CreateMetodoPagoInput) (*domain.MetodoPago, error) {
	var payload metodoPagoPayload
	if err := s.client.post(ctx, "/metodos-pago", input, &payload); err != nil {
		return nil, err
	}
	return &payload.MetodoPago, nil
}

func (s *MetodoPagoService) Update(ctx context.Context, id int64, input domain.UpdateMetodoPagoInput) (*domain.MetodoPago, error) {
	var payload metodoPagoPayload
	if err := s.client.put(ctx, fmt.Sprintf("/metodos-pago/%d", id), input, &payload); err != nil {
		return nil, err
	}
	return &payload.MetodoPago, nil
}

func (s *MetodoPagoService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/metodos-pago/%d", id))
}
