package store

import (
	"context"
	"sync"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// MetodosPago caches the payment method list. Reconciliation policy: local
// patch.
type MetodosPago struct {
	svc *api.MetodoPagoService

	mu      sync.Mutex
	metodos []domain.MetodoPago
	loading bool
	err     string
}

func NewMetodosPago(svc *api.MetodoPagoService) *MetodosPago {
	return &MetodosPago{svc: svc}
}

func (s *MetodosPago) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *MetodosPago) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *MetodosPago) fail(err error, fallback string) {
	msg := displayError(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *MetodosPago) Fetch(ctx context.Context) error {
	s.begin()
	defer s.finish()

	metodos, err := s.svc.List(ctx)
	if err != nil {
		s.fail(err, "Error al cargar métodos de pago")
		return err
	}
	s.mu.Lock()
	s.metodos = metodos
	s.mu.Unlock()
	return nil
}

func (s *MetodosPago) Create(ctx context.Context, input domain.CreateMetodoPagoInput) (*domain.MetodoPago, error) {
	s.begin()
	defer s.finish()

	created, err := s.svc.Create(ctx, input)
	if err != nil {
		s.fail(err, "Error al crear método de pago")
		return nil, err
	}
	s.mu.Lock()
	s.metodos = append([]domain.MetodoPago{*created}, s.metodos...)
	s.mu.Unlock()
	return created, nil
}

func (s *MetodosPago) Update(ctx context.Context, id int64, input domain.UpdateMetodoPagoInput) (*domain.MetodoPago, error) {
	s.begin()
	defer s.finish()

	updated, err := s.svc.Update(ctx, id, input)
	if err != nil {
		s.fail(err, "Error al actualizar método de pago")
		return nil, err
	}
	s.mu.Lock()
	for i := range s.metodos {
		if s.metodos[i].ID == id {
			s.metodos[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *MetodosPago) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail(err, "Error al eliminar método de pago")
		return err
	}
	s.mu.Lock()
	kept := s.metodos[:0]
	for _, m := range s.metodos {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.metodos = kept
	s.mu.Unlock()
	return nil
}

func (s *MetodosPago) MetodosPago() []domain.MetodoPago {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MetodoPago(nil), s.metodos...)
}

func (s *MetodosPago) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *MetodosPago) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
