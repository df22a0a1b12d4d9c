package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// ProductoService wraps the /productos endpoints.
type ProductoService struct {
	client *Client
}

type ProductoListParams struct {
	Page   int
	Limit  int
	Activo *bool
}

func (p ProductoListParams) values() url.Values {
	v := ListParams{Page: p.Page, Limit: p.Limit}.values()
	if p.Activo != nil {
		v.Set("activo", strconv.FormatBool(*p.Activo))
	}
	return v
}

type productosPayload struct {
	Productos  []domain.Producto `json:"productos"`
	Pagination domain.Pagination `json:"pagination"`
}

type productoPayload struct {
	Producto domain.Producto `json:"producto"`
}

func (s *ProductoService) List(ctx context.Context, params ProductoListParams) ([]domain.Producto, domain.Pagination, error) {
	var payload productosPayload
	if err := s.client.get(ctx, "/productos", params.values(), &payload); err != nil {
		return nil, domain.Pagination{}, err
	}
	if payload.Productos == nil {
		payload.Productos = []domain.Producto{}
	}
	return payload.Productos, payload.Pagination, nil
}

func (s *ProductoService) Get(ctx context.Context, id int64) (*domain.Producto, error) {
	var payload productoPayload
	if err := s.client.get(ctx, fmt.Sprintf("/productos/%d", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Producto, nil
}

func (s *ProductoService) Create(ctx context.Context, input domain.CreateProductoInput) (*domain.Producto, error) {
	var payload productoPayload
	if err := s.client.post(ctx, "/productos", input, &payload); err != nil {
		return nil, err
	}
	return &payload.Producto, nil
}

func (s *ProductoService) Update(ctx context.Context, id int64, input domain.UpdateProductoInput) (*domain.Producto, error) {
	var payload productoPayload
	if err := s.client.put(ctx, fmt.Sprintf("/productos/%d", id), input, &payload); err != nil {
		return nil, err
	}
	return &payload.Producto, nil
}

func (s *ProductoService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/productos/%d", id))
}

// Costo fetches the server-computed ingredient cost breakdown and margin.
func (s *ProductoService) Costo(ctx context.Context, id int64) (*domain.ProductoCosto, error) {
	var payload domain.ProductoCosto
	if err := s.client.get(ctx, fmt.Sprintf("/productos/%d/costo", id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AssignIngredientes replaces a product's recipe.
func (s *ProductoService) AssignIngredientes(ctx context.Context, id int64, ingredientes []domain.IngredienteAsignacion) (*domain.Producto, error) {
	body := map[string]any{"ingredientes": ingredientes}
	var payload productoPayload
	if err := s.client.put(ctx, fmt.Sprintf("/productos/%d/ingredientes", id), body, &payload); err != nil {
		return nil, err
	}
	return &payload.Producto, nil
}
