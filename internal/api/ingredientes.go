package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// IngredienteService wraps the /ingredientes endpoints.
type IngredienteService struct {
	client *Client
}

type IngredienteListParams struct {
	Page    int
	Limit   int
	OrderBy string
}

func (p IngredienteListParams) values() url.Values {
	v := ListParams{Page: p.Page, Limit: p.Limit}.values()
	if p.OrderBy != "" {
		v.Set("orderBy", p.OrderBy)
	}
	return v
}

type ingredientesPayload struct {
	Ingredientes []domain.Ingrediente `json:"ingredientes"`
	Pagination   domain.Pagination    `json:"pagination"`
}

type ingredientePayload struct {
	Ingrediente domain.Ingrediente `json:"ingrediente"`
}

func (s *IngredienteService) List(ctx context.Context, params IngredienteListParams) ([]domain.Ingrediente, domain.Pagination, error) {
	var payload ingredientesPayload
	if err := s.client.get(ctx, "/ingredientes", params.values(), &payload); err != nil {
		return nil, domain.Pagination{}, err
	}
	if payload.Ingredientes == nil {
		payload.Ingredientes = []domain.Ingrediente{}
	}
	return payload.Ingredientes, payload.Pagination, nil
}

func (s *IngredienteService) Get(ctx context.Context, id int64) (*domain.Ingrediente, error) {
	var payload ingredientePayload
	if err := s.client.get(ctx, fmt.Sprintf("/ingredientes/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Ingrediente, nil
}

func (s *IngredienteService) Create(ctx context.Context, input domain.CreateIngredienteInput) (*domain.Ingrediente, error) {
	var payload ingredientePayload
	if err := s.client.post(ctx, "/ingredientes", input, &payload); err != nil {
		return nil, err
	}
	return &payload.Ingrediente, nil
}

func (s *IngredienteService) Update(ctx context.Context, id int64, input domain.UpdateIngredienteInput) (*domain.Ingrediente, error) {
	var payload ingredientePayload
	if err := s.client.put(ctx, fmt.Sprintf("/ingredientes/%d", id), input, &payload); err != nil {
		return nil, err
	}
	return &payload.Ingrediente, nil
}

func (s *IngredienteService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/ingredientes/%d", id))
}
