package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

func TestClientUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clientes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"clientes": [{"id": 1, "nombre": "Ana", "telefono": "555"}],
				"pagination": {"total": 11, "page": 2, "limit": 10, "totalPages": 2}
			}
		}`))
	}))
	defer server.Close()

	client := New(server.URL)
	clientes, pagination, err := client.Clientes.List(context.Background(), ListParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clientes) != 1 || clientes[0].Nombre != "Ana" {
		t.Fatalf("clientes = %+v", clientes)
	}
	if pagination.Total != 11 || pagination.TotalPages != 2 {
		t.Fatalf("pagination = %+v", pagination)
	}
}

func TestClientMissingDataIsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "success"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	clientes, _, err := client.Clientes.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if clientes == nil || len(clientes) != 0 {
		t.Fatalf("clientes = %#v, want empty slice", clientes)
	}
}

func TestClientPrefersServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": "fail", "message": "Cliente no encontrado"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Clientes.Get(context.Background(), 99)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Error() != "Cliente no encontrado" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Status != "fail" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClientFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status": "error"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Clientes.Get(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Error() != "Internal Server Error" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestClientUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close() // reuse the address of a closed listener

	client := New(server.URL)
	_, _, err := client.Clientes.List(context.Background(), ListParams{})
	if !errors.Is(err, ErrServerUnavailable) {
		t.Fatalf("err = %v, want ErrServerUnavailable", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failures must not be APIErrors")
	}
}

func TestClientMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html>proxy error</html>`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, _, err := client.Clientes.List(context.Background(), ListParams{})
	if !errors.Is(err, ErrServerUnavailable) {
		t.Fatalf("err = %v, want ErrServerUnavailable", err)
	}
}

func TestClientSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status": "success", "data": {"cliente": {"id": 7, "nombre": "Luis", "telefono": "111"}}}`))
	}))
	defer server.Close()

	client := New(server.URL)
	created, err := client.Clientes.Create(context.Background(), domain.CreateClienteInput{Nombre: "Luis", Telefono: "111"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("created = %+v", created)
	}
}
