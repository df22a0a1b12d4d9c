package store

import (
	"context"
	"sync"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// Ventas caches the sale list. Reconciliation policy: local patch (prepend
// on create, replace by id on anular).
type Ventas struct {
	svc *api.VentaService

	mu         sync.Mutex
	ventas     []domain.Venta
	pagination domain.Pagination
	loading    bool
	err        string
}

func NewVentas(svc *api.VentaService) *Ventas {
	return &Ventas{svc: svc}
}

func (s *Ventas) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Ventas) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Ventas) fail(err error, fallback string) {
	msg := displayError(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Ventas) Fetch(ctx context.Context, params api.VentaListParams) error {
	s.begin()
	defer s.finish()

	ventas, pagination, err := s.svc.List(ctx, params)
	if err != nil {
		s.fail(err, "Error al cargar ventas")
		return err
	}
	s.mu.Lock()
	s.ventas = ventas
	s.pagination = pagination
	s.mu.Unlock()
	return nil
}

func (s *Ventas) Create(ctx context.Context, input domain.CreateVentaInput) (*domain.Venta, error) {
	s.begin()
	defer s.finish()

	created, err := s.svc.Create(ctx, input)
	if err != nil {
		s.fail(err, "Error al crear venta")
		return nil, err
	}
	s.mu.Lock()
	s.ventas = append([]domain.Venta{*created}, s.ventas...)
	s.mu.Unlock()
	return created, nil
}

// Anular voids a sale and swaps the updated record into the cached list.
func (s *Ventas) Anular(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	updated, err := s.svc.Anular(ctx, id)
	if err != nil {
		s.fail(err, "Error al anular venta")
		return err
	}
	s.mu.Lock()
	for i := range s.ventas {
		if s.ventas[i].ID == id {
			s.ventas[i] = *updated
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Ventas) Ventas() []domain.Venta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Venta(nil), s.ventas...)
}

func (s *Ventas) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *Ventas) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Ventas) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
