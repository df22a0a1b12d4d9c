package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// fakeClientesServer keeps a mutable client list and serves the endpoints the
// store touches, so the refetch policy can be observed end to end.
type fakeClientesServer struct {
	clientes []domain.Cliente
	nextID   int64
	fetches  int
}

func (f *fakeClientesServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /clientes", func(w http.ResponseWriter, _ *http.Request) {
		f.fetches++
		respond(w, http.StatusOK, map[string]any{
			"clientes":   f.clientes,
			"pagination": domain.Pagination{Total: len(f.clientes), Page: 1, Limit: 10, TotalPages: 1},
		})
	})
	mux.HandleFunc("POST /clientes", func(w http.ResponseWriter, r *http.Request) {
		var input domain.CreateClienteInput
		json.NewDecoder(r.Body).Decode(&input)
		f.nextID++
		created := domain.Cliente{
			ID:       f.nextID,
			Nombre:   input.Nombre,
			Telefono: input.Telefono,
			Count:    &domain.ClienteCount{Ventas: 0},
		}
		f.clientes = append(f.clientes, created)
		respond(w, http.StatusCreated, map[string]any{"cliente": created})
	})
	mux.HandleFunc("DELETE /clientes/{id}", func(w http.ResponseWriter, r *http.Request) {
		kept := f.clientes[:0]
		for _, c := range f.clientes {
			if fmt.Sprint(c.ID) != r.PathValue("id") {
				kept = append(kept, c)
			}
		}
		f.clientes = kept
		respond(w, http.StatusOK, nil)
	})
	return mux
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

func TestClientesRefetchAfterCreate(t *testing.T) {
	fake := &fakeClientesServer{nextID: 10}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	s := NewClientes(api.New(server.URL).Clientes)
	ctx := context.Background()

	if err := s.Fetch(ctx, 1, 10); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	fetchesBefore := fake.fetches

	if _, err := s.Create(ctx, domain.CreateClienteInput{Nombre: "Ana", Telefono: "555"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fake.fetches != fetchesBefore+1 {
		t.Fatalf("fetches = %d, want a refetch after create", fake.fetches)
	}

	clientes := s.Clientes()
	if len(clientes) != 1 || clientes[0].Nombre != "Ana" {
		t.Fatalf("clientes = %+v", clientes)
	}
	// The refetched row carries the server-computed sale count.
	if clientes[0].Count == nil {
		t.Fatal("expected _count from refetch")
	}
}

func TestClientesRefetchAfterDelete(t *testing.T) {
	fake := &fakeClientesServer{
		clientes: []domain.Cliente{{ID: 1, Nombre: "Ana"}, {ID: 2, Nombre: "Luis"}},
	}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	s := NewClientes(api.New(server.URL).Clientes)
	ctx := context.Background()

	if err := s.Fetch(ctx, 1, 10); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	clientes := s.Clientes()
	if len(clientes) != 1 || clientes[0].ID != 2 {
		t.Fatalf("clientes = %+v", clientes)
	}
}

func TestClientesFetchErrorMessage(t *testing.T) {
	server := httptest.NewServer(nil)
	server.Close()

	s := NewClientes(api.New(server.URL).Clientes)
	if err := s.Fetch(context.Background(), 1, 10); err == nil {
		t.Fatal("expected fetch error")
	}
	if s.Err() != "Error al cargar clientes" {
		t.Fatalf("Err() = %q", s.Err())
	}
	if s.Loading() {
		t.Fatal("loading must clear after a failed fetch")
	}
}

func TestClientesServerMessagePreferred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "fail",
			"message": "No se puede eliminar un cliente con ventas registradas",
		})
	}))
	defer server.Close()

	s := NewClientes(api.New(server.URL).Clientes)
	if err := s.Delete(context.Background(), 1); err == nil {
		t.Fatal("expected delete error")
	}
	if s.Err() != "No se puede eliminar un cliente con ventas registradas" {
		t.Fatalf("Err() = %q", s.Err())
	}
}
