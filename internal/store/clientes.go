package store

import (
	"context"
	"sync"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// Clientes caches the client list. Reconciliation policy: refetch after
// every mutation, so the server-computed _count.ventas never goes stale.
type Clientes struct {
	svc *api.ClienteService

	mu         sync.Mutex
	clientes   []domain.Cliente
	pagination domain.Pagination
	loading    bool
	err        string
	lastPage   int
	lastLimit  int
}

func NewClientes(svc *api.ClienteService) *Clientes {
	return &Clientes{svc: svc, lastPage: 1, lastLimit: 10}
}

func (s *Clientes) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Clientes) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Clientes) fail(err error, fallback string) {
	msg := displayError(err, fallback)
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Fetch replaces the cached list with one page from the API.
func (s *Clientes) Fetch(ctx context.Context, page, limit int) error {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	s.begin()
	defer s.finish()

	clientes, pagination, err := s.svc.List(ctx, api.ListParams{Page: page, Limit: limit})
	if err != nil {
		s.fail(err, "Error al cargar clientes")
		return err
	}
	s.mu.Lock()
	s.clientes = clientes
	s.pagination = pagination
	s.lastPage, s.lastLimit = page, limit
	s.mu.Unlock()
	return nil
}

// Search replaces the cached list with the search result. Pagination is
// left untouched: the search endpoint has none.
func (s *Clientes) Search(ctx context.Context, query string) error {
	s.begin()
	defer s.finish()

	clientes, err := s.svc.Search(ctx, query)
	if err != nil {
		s.fail(err, "Error al buscar clientes")
		return err
	}
	s.mu.Lock()
	s.clientes = clientes
	s.mu.Unlock()
	return nil
}

// refetch reloads the last fetched page after a mutation.
func (s *Clientes) refetch(ctx context.Context) {
	s.mu.Lock()
	page, limit := s.lastPage, s.lastLimit
	s.mu.Unlock()

	clientes, pagination, err := s.svc.List(ctx, api.ListParams{Page: page, Limit: limit})
	if err != nil {
		s.fail(err, "Error al cargar clientes")
		return
	}
	s.mu.Lock()
	s.clientes = clientes
	s.pagination = pagination
	s.mu.Unlock()
}

func (s *Clientes) Create(ctx context.Context, input domain.CreateClienteInput) (*domain.Cliente, error) {
	s.begin()
	defer s.finish()

	created, err := s.svc.Create(ctx, input)
	if err != nil {
		s.fail(err, "Error al crear cliente")
		return nil, err
	}
	s.refetch(ctx)
	return created, nil
}

func (s *Clientes) Update(ctx context.Context, id int64, input domain.UpdateClienteInput) (*domain.Cliente, error) {
	s.begin()
	defer s.finish()

	updated, err := s.svc.Update(ctx, id, input)
	if err != nil {
		s.fail(err, "Error al actualizar cliente")
		return nil, err
	}
	s.refetch(ctx)
	return updated, nil
}

func (s *Clientes) Delete(ctx context.Context, id int64) error {
	s.begin()
	defer s.finish()

	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail(err, "Error al eliminar cliente")
		return err
	}
	s.refetch(ctx)
	return nil
}

// Clientes returns a copy of the cached list.
func (s *Clientes) Clientes() []domain.Cliente {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Cliente(nil), s.clientes...)
}

func (s *Clientes) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *Clientes) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the display message of the last failed operation, or "".
func (s *Clientes) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
