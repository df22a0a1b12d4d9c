package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// The productos store patches its cache locally: no refetch after mutations.
func TestProductosLocalPatch(t *testing.T) {
	var listCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /productos", func(w http.ResponseWriter, _ *http.Request) {
		listCalls++
		respond(w, http.StatusOK, map[string]any{
			"productos": []domain.Producto{
				{ID: 1, Nombre: "Muzzarella", PrecioBase: 8000, Activo: true},
				{ID: 2, Nombre: "Napolitana", PrecioBase: 9500, Activo: true},
			},
			"pagination": domain.Pagination{Total: 2, Page: 1, Limit: 10, TotalPages: 1},
		})
	})
	mux.HandleFunc("POST /productos", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusCreated, map[string]any{
			"producto": domain.Producto{ID: 3, Nombre: "Fugazzeta", PrecioBase: 10500, Activo: true},
		})
	})
	mux.HandleFunc("PUT /productos/2", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{
			"producto": domain.Producto{ID: 2, Nombre: "Napolitana", PrecioBase: 11000, Activo: true},
		})
	})
	mux.HandleFunc("DELETE /productos/1", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, nil)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewProductos(api.New(server.URL).Productos)
	ctx := context.Background()

	if err := s.Fetch(ctx, api.ProductoListParams{Page: 1, Limit: 10}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// Create prepends.
	if _, err := s.Create(ctx, domain.CreateProductoInput{Nombre: "Fugazzeta", PrecioBase: 10500}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	productos := s.Productos()
	if len(productos) != 3 || productos[0].ID != 3 {
		t.Fatalf("productos after create = %+v", productos)
	}

	// Update replaces in place.
	if _, err := s.Update(ctx, 2, domain.UpdateProductoInput{PrecioBase: 11000}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	productos = s.Productos()
	if productos[2].ID != 2 || productos[2].PrecioBase != 11000 {
		t.Fatalf("productos after update = %+v", productos)
	}

	// Delete filters by id.
	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	productos = s.Productos()
	if len(productos) != 2 {
		t.Fatalf("productos after delete = %+v", productos)
	}
	for _, p := range productos {
		if p.ID == 1 {
			t.Fatal("deleted product still cached")
		}
	}

	if listCalls != 1 {
		t.Fatalf("listCalls = %d, mutations must not refetch", listCalls)
	}
}

func TestVentasAnularPatchesInPlace(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ventas", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{
			"ventas": []domain.Venta{
				{ID: 1, Total: 8000, Estado: domain.EstadoPendiente},
				{ID: 2, Total: 9500, Estado: domain.EstadoCompletada},
			},
			"pagination": domain.Pagination{Total: 2, Page: 1, Limit: 10, TotalPages: 1},
		})
	})
	mux.HandleFunc("PATCH /ventas/1/anular", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]any{
			"venta": domain.Venta{ID: 1, Total: 8000, Estado: domain.EstadoAnulada},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewVentas(api.New(server.URL).Ventas)
	ctx := context.Background()

	if err := s.Fetch(ctx, api.VentaListParams{}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if err := s.Anular(ctx, 1); err != nil {
		t.Fatalf("Anular: %v", err)
	}

	ventas := s.Ventas()
	if ventas[0].Estado != domain.EstadoAnulada {
		t.Fatalf("ventas[0] = %+v", ventas[0])
	}
	if ventas[1].Estado != domain.EstadoCompletada {
		t.Fatalf("ventas[1] = %+v", ventas[1])
	}
}
