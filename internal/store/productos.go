package store

import (
	"context"
	"sync"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// Productos caches the product list. Reconciliation policy: local patch
// (prepend on create, replace by id on update, filter by id on delete).
type Productos struct {
	svc *api.ProductoService

	mu         sync.Mutex
	productos  []domain.Producto
	pagination domain.Pagination
	loading    bool
	err        string
}

func NewProductos(svc *api.ProductoService) *Productos {
	return &Productos{svc: svc}
}

func (s *Productos) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Productos) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Productos) fail(err error, fallback string) {
	msg := displayError(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Productos) Fetch(ctx context.Context, params api.ProductoListParams) error {
	s.begin()
	defer s.finish()

	productos, pagination, err := s.svc.List(ctx, params)
	if err != nil {
		s.fail(err, "Error al cargar productos")
		return err
	}
	s.mu.Lock()
	s.productos = productos
	s.pagination = pagination
	s.mu.Unlock()
	return nil
}

func (s *Productos) Create(ctx context.Context, input domain.CreateProductoInput) (*domain.Producto, error) {
	s.begin()
	defer s.finish()

	created, err := s.svc.Create(ctx, input)
	if err != nil {
		s.fail(err, "Error al crear producto")
		return nil, err
	}
	s.mu.Lock()
	s.productos = append([]domain.Producto{*created}, s.productos...)
	s.mu.Unlock()
	return created, nil
}

func (s *Productos) Update(ctx context.Context, id int64, input domain.UpdateProductoInput) (*domain.Producto, error) {
	s.begin()
	defer s.finish()

	updated, err := s.svc.Update(ctx, id, input)
	if err != nil {
		s.fail(err, "Error al actualizar producto")
		return nil, err
	}
	s.mu.Lock()
	for i := range s.productos {
		if s.productos[i].ID == id {
			s.productos[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *Productos) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail(err, "Error al eliminar producto")
		return err
	}
	s.mu.Lock()
	kept := s.productos[:0]
	for _, p := range s.productos {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.productos = kept
	s.mu.Unlock()
	return nil
}

func (s *Productos) Productos() []domain.Producto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Producto(nil), s.productos...)
}

func (s *Productos) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *Productos) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Productos) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
