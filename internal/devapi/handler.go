// Package devapi is a local stand-in for the remote sistema-ventas REST
// API. It serves the consumed endpoint surface over SQLite with the same
// {status, data, message} envelope, so the CLI and the test suite can run
// without the production backend.
package devapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db *sqlx.DB
}

// New constructs a Handler.
func New(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

// Router wires up the HTTP API under /api.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", h.listClientes)
			r.Post("/", h.createCliente)
			r.Get("/buscar", h.searchClientes)
			r.Get("/{id}", h.getCliente)
			r.Put("/{id}", h.updateCliente)
			r.Delete("/{id}", h.deleteCliente)
			r.Get("/{id}/ventas", h.clienteHistorial)
		})

		r.Route("/productos", func(r chi.Router) {
			r.Get("/", h.listProductos)
			r.Post("/", h.createProducto)
			r.Get("/{id}", h.getProducto)
			r.Put("/{id}", h.updateProducto)
			r.Delete("/{id}", h.deleteProducto)
			r.Get("/{id}/costo", h.productoCosto)
			r.Put("/{id}/ingredientes", h.assignIngredientes)
		})

		r.Route("/ingredientes", func(r chi.Router) {
			r.Get("/", h.listIngredientes)
			r.Post("/", h.createIngrediente)
			r.Get("/{id}", h.getIngrediente)
			r.Put("/{id}", h.updateIngrediente)
			r.Delete("/{id}", h.deleteIngrediente)
		})

		r.Route("/metodos-pago", func(r chi.Router) {
			r.Get("/", h.listMetodosPago)
			r.Post("/", h.createMetodoPago)
			r.Get("/{id}", h.getMetodoPago)
			r.Put("/{id}", h.updateMetodoPago)
			r.Delete("/{id}", h.deleteMetodoPago)
		})

		r.Route("/ventas", func(r chi.Router) {
			r.Get("/", h.listVentas)
			r.Post("/", h.createVenta)
			r.Get("/{id}", h.getVenta)
			r.Patch("/{id}/anular", h.anularVenta)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/estadisticas", h.dashboardEstadisticas)
			r.Get("/ventas-del-dia", h.ventasDelDia)
			r.Get("/ventas-por-mes", h.ventasPorMes)
		})
	})

	return r
}

// envelope is the uniform response wrapper.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Helpers

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondSuccess(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Status: domain.StatusSuccess, Data: data})
}

// respondFail reports a 4xx caused by the request.
func respondFail(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Status: domain.StatusFail, Message: message})
}

// respondError reports a server-side failure.
func respondError(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusInternalServerError, envelope{Status: domain.StatusError, Message: message})
}

func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parsePagination reads page/limit query parameters with the API defaults.
func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 1000 {
		limit = 1000
	}
	return page, limit
}

func paginationFor(total, page, limit int) domain.Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return domain.Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
