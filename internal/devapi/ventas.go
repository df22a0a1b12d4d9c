package devapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

const ventaColumns = `id, cliente_id, metodo_pago_id, total, estado, direccion_entrega, notas, created_at, updated_at`

var estadosValidos = map[string]bool{
	domain.EstadoPendiente:  true,
	domain.EstadoCompletada: true,
	domain.EstadoEntregada:  true,
	domain.EstadoAnulada:    true,
}

func (h *Handler) fetchVenta(id int64) (*domain.Venta, error) {
	var venta domain.Venta
	err := h.db.Get(&venta, `SELECT `+ventaColumns+` FROM ventas WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	ventas := []domain.Venta{venta}
	if err := h.attachVentaRelations(ventas); err != nil {
		return nil, err
	}
	return &ventas[0], nil
}

// attachVentaRelations loads the client, payment method and line items of
// every sale in the slice.
func (h *Handler) attachVentaRelations(ventas []domain.Venta) error {
	if len(ventas) == 0 {
		return nil
	}

	ids := make([]int64, len(ventas))
	byID := make(map[int64]*domain.Venta, len(ventas))
	for i := range ventas {
		ids[i] = ventas[i].ID
		byID[ventas[i].ID] = &ventas[i]

		var cliente domain.Cliente
		err := h.db.Get(&cliente, `SELECT id, nombre, telefono, direccion, notas, created_at, updated_at FROM clientes WHERE id = ?`,
			ventas[i].ClienteID)
		if err == nil {
			ventas[i].Cliente = &cliente
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		var metodo domain.MetodoPago
		err = h.db.Get(&metodo, `SELECT `+metodoPagoColumns+` FROM metodos_pago WHERE id = ?`, ventas[i].MetodoPagoID)
		if err == nil {
			ventas[i].MetodoPago = &metodo
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	itemsQuery, itemsArgs, err := sqlx.In(`SELECT id, venta_id, producto_id, ingrediente_id, cantidad, precio_unitario, subtotal
                FROM venta_items WHERE venta_id IN (?) ORDER BY id ASC`, ids)
	if err != nil {
		return err
	}
	var items []domain.VentaItem
	if err := h.db.Select(&items, itemsQuery, itemsArgs...); err != nil {
		return err
	}
	for _, item := range items {
		if item.ProductoID != 0 {
			var producto domain.Producto
			err := h.db.Get(&producto, `SELECT `+productoColumns+` FROM productos WHERE id = ?`, item.ProductoID)
			if err == nil {
				item.Producto = &producto
			} else if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}
		venta := byID[item.VentaID]
		venta.Items = append(venta.Items, item)
	}
	return nil
}

func (h *Handler) listVentas(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	var (
		clauses []string
		args    []any
	)
	if estado := r.URL.Query().Get("estado"); estado != "" {
		if !estadosValidos[estado] {
			respondFail(w, http.StatusBadRequest, "Estado de venta inválido")
			return
		}
		clauses = append(clauses, "estado = ?")
		args = append(args, estado)
	}
	if clienteID := r.URL.Query().Get("clienteId"); clienteID != "" {
		clauses = append(clauses, "cliente_id = ?")
		args = append(args, clienteID)
	}
	if fechaInicio := r.URL.Query().Get("fechaInicio"); fechaInicio != "" {
		if _, err := time.Parse("2006-01-02", fechaInicio); err != nil {
			respondFail(w, http.StatusBadRequest, "fechaInicio debe tener formato YYYY-MM-DD")
			return
		}
		clauses = append(clauses, "DATE(created_at) >= ?")
		args = append(args, fechaInicio)
	}
	if fechaFin := r.URL.Query().Get("fechaFin"); fechaFin != "" {
		if _, err := time.Parse("2006-01-02", fechaFin); err != nil {
			respondFail(w, http.StatusBadRequest, "fechaFin debe tener formato YYYY-MM-DD")
			return
		}
		clauses = append(clauses, "DATE(created_at) <= ?")
		args = append(args, fechaFin)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM ventas`+where, args...); err != nil {
		respondError(w, "No se pudieron cargar las ventas")
		return
	}

	var ventas []domain.Venta
	args = append(args, limit, (page-1)*limit)
	err := h.db.Select(&ventas, `SELECT `+ventaColumns+` FROM ventas`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		respondError(w, "No se pudieron cargar las ventas")
		return
	}
	if err := h.attachVentaRelations(ventas); err != nil {
		respondError(w, "No se pudieron cargar las ventas")
		return
	}
	if ventas == nil {
		ventas = []domain.Venta{}
	}
	respondSuccess(w, http.StatusOK, map[string]any{
		"ventas":     ventas,
		"pagination": paginationFor(total, page, limit),
	})
}

func (h *Handler) getVenta(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de venta inválido")
		return
	}
	venta, err := h.fetchVenta(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Venta no encontrada")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar la venta")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"venta": venta})
}

func (h *Handler) createVenta(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateVentaInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	if input.ClienteID == 0 {
		respondFail(w, http.StatusBadRequest, "El cliente es requerido")
		return
	}
	if input.MetodoPagoID == 0 {
		respondFail(w, http.StatusBadRequest, "El método de pago es requerido")
		return
	}
	if len(input.Items) == 0 {
		respondFail(w, http.StatusBadRequest, "La venta debe tener al menos un item")
		return
	}
	if strings.TrimSpace(input.DireccionEntrega) == "" {
		respondFail(w, http.StatusBadRequest, "La dirección de entrega es requerida")
		return
	}

	var exists int
	if err := h.db.Get(&exists, `SELECT COUNT(*) FROM clientes WHERE id = ?`, input.ClienteID); err != nil || exists == 0 {
		respondFail(w, http.StatusBadRequest, "Cliente no encontrado")
		return
	}
	if err := h.db.Get(&exists, `SELECT COUNT(*) FROM metodos_pago WHERE id = ?`, input.MetodoPagoID); err != nil || exists == 0 {
		respondFail(w, http.StatusBadRequest, "Método de pago no encontrado")
		return
	}

	// Validate every line and compute the total before touching the tables.
	var total float64
	for _, item := range input.Items {
		if item.ProductoID == 0 && item.IngredienteID == 0 {
			respondFail(w, http.StatusBadRequest, "Cada item debe referenciar un producto o un ingrediente")
			return
		}
		if item.Cantidad <= 0 {
			respondFail(w, http.StatusBadRequest, "La cantidad debe ser un entero positivo")
			return
		}
		if item.PrecioUnitario < 0 {
			respondFail(w, http.StatusBadRequest, "El precio unitario no puede ser negativo")
			return
		}
		if item.ProductoID != 0 {
			if err := h.db.Get(&exists, `SELECT COUNT(*) FROM productos WHERE id = ?`, item.ProductoID); err != nil || exists == 0 {
				respondFail(w, http.StatusBadRequest, "Producto no encontrado")
				return
			}
		} else {
			if err := h.db.Get(&exists, `SELECT COUNT(*) FROM ingredientes WHERE id = ?`, item.IngredienteID); err != nil || exists == 0 {
				respondFail(w, http.StatusBadRequest, "Ingrediente no encontrado")
				return
			}
		}
		total += float64(item.Cantidad) * item.PrecioUnitario
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, "No se pudo registrar la venta")
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO ventas (cliente_id, metodo_pago_id, total, estado, direccion_entrega, notas) VALUES (?, ?, ?, ?, ?, ?)`,
		input.ClienteID, input.MetodoPagoID, total, domain.EstadoPendiente, input.DireccionEntrega, input.Notas)
	if err != nil {
		respondError(w, "No se pudo registrar la venta")
		return
	}
	ventaID, _ := res.LastInsertId()

	for _, item := range input.Items {
		subtotal := float64(item.Cantidad) * item.PrecioUnitario
		_, err := tx.Exec(`INSERT INTO venta_items (venta_id, producto_id, ingrediente_id, cantidad, precio_unitario, subtotal) VALUES (?, ?, ?, ?, ?, ?)`,
			ventaID, item.ProductoID, item.IngredienteID, item.Cantidad, item.PrecioUnitario, subtotal)
		if err != nil {
			respondError(w, "No se pudieron registrar los items de la venta")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, "No se pudo registrar la venta")
		return
	}

	venta, err := h.fetchVenta(ventaID)
	if err != nil {
		respondError(w, "No se pudo cargar la venta creada")
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]any{"venta": venta})
}

func (h *Handler) anularVenta(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de venta inválido")
		return
	}
	var estado string
	err := h.db.Get(&estado, `SELECT estado FROM ventas WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Venta no encontrada")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar la venta")
		return
	}
	if estado == domain.EstadoAnulada {
		respondFail(w, http.StatusBadRequest, "La venta ya está anulada")
		return
	}

	_, err = h.db.Exec(`UPDATE ventas SET estado = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, domain.EstadoAnulada, id)
	if err != nil {
		respondError(w, "No se pudo anular la venta")
		return
	}
	venta, err := h.fetchVenta(id)
	if err != nil {
		respondError(w, "No se pudo cargar la venta anulada")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"venta": venta})
}
