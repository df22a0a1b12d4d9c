package store

import (
	"context"
	"sync"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// Ingredientes caches the ingredient list. Reconciliation policy: local
// patch.
type Ingredientes struct {
	svc *api.IngredienteService

	mu           sync.Mutex
	ingredientes []domain.Ingrediente
	pagination   domain.Pagination
	loading      bool
	err          string
}

func NewIngredientes(svc *api.IngredienteService) *Ingredientes {
	return &Ingredientes{svc: svc}
}

func (s *Ingredientes) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Ingredientes) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Ingredientes) fail(err error, fallback string) {
	msg := displayError(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Ingredientes) Fetch(ctx context.Context, params api.IngredienteListParams) error {
	s.begin()
	defer s.finish()

	ingredientes, pagination, err := s.svc.List(ctx, params)
	if err != nil {
		s.fail(err, "Error al cargar ingredientes")
		return err
	}
	s.mu.Lock()
	s.ingredientes = ingredientes
	s.pagination = pagination
	s.mu.Unlock()
	return nil
}

func (s *Ingredientes) Create(ctx context.Context, input domain.CreateIngredienteInput) (*domain.Ingrediente, error) {
	s.begin()
	defer s.finish()

	created, err := s.svc.Create(ctx, input)
	if err != nil {
		s.fail(err, "Error al crear ingrediente")
		return nil, err
	}
	s.mu.Lock()
	s.ingredientes = append([]domain.Ingrediente{*created}, s.ingredientes...)
	s.mu.Unlock()
	return created, nil
}

func (s *Ingredientes) Update(ctx context.Context, id int64, input domain.UpdateIngredienteInput) (*domain.Ingrediente, error) {
	s.begin()
	defer s.finish()

	updated, err := s.svc.Update(ctx, id, input)
	if err != nil {
		s.fail(err, "Error al actualizar ingrediente")
		return nil, err
	}
	s.mu.Lock()
	for i := range s.ingredientes {
		if s.ingredientes[i].ID == id {
			s.ingredientes[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *Ingredientes) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail(err, "Error al eliminar ingrediente")
		return err
	}
	s.mu.Lock()
	kept := s.ingredientes[:0]
	for _, ing := range s.ingredientes {
		if ing.ID != id {
			kept = append(kept, ing)
		}
	}
	s.ingredientes = kept
	s.mu.Unlock()
	return nil
}

func (s *Ingredientes) Ingredientes() []domain.Ingrediente {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Ingrediente(nil), s.ingredientes...)
}

func (s *Ingredientes) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *Ingredientes) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Ingredientes) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
