package devapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// clienteRow carries the client columns plus the computed sale count.
type clienteRow struct {
	domain.Cliente
	VentasCount int `db:"ventas_count"`
}

func (row clienteRow) toCliente() domain.Cliente {
	c := row.Cliente
	c.Count = &domain.ClienteCount{Ventas: row.VentasCount}
	return c
}

const clienteColumns = `c.id, c.nombre, c.telefono, c.direccion, c.notas, c.created_at, c.updated_at,
        (SELECT COUNT(*) FROM ventas v WHERE v.cliente_id = c.id) AS ventas_count`

func (h *Handler) fetchCliente(id int64) (*domain.Cliente, error) {
	var row clienteRow
	err := h.db.Get(&row, `SELECT `+clienteColumns+` FROM clientes c WHERE c.id = ?`, id)
	if err != nil {
		return nil, err
	}
	cliente := row.toCliente()
	return &cliente, nil
}

func (h *Handler) listClientes(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	var total int
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM clientes`); err != nil {
		respondError(w, "No se pudieron cargar los clientes")
		return
	}

	var rows []clienteRow
	err := h.db.Select(&rows, `SELECT `+clienteColumns+` FROM clientes c ORDER BY c.nombre ASC LIMIT ? OFFSET ?`,
		limit, (page-1)*limit)
	if err != nil {
		respondError(w, "No se pudieron cargar los clientes")
		return
	}

	clientes := make([]domain.Cliente, len(rows))
	for i, row := range rows {
		clientes[i] = row.toCliente()
	}
	respondSuccess(w, http.StatusOK, map[string]any{
		"clientes":   clientes,
		"pagination": paginationFor(total, page, limit),
	})
}

func (h *Handler) searchClientes(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	var rows []clienteRow
	if query == "" {
		respondSuccess(w, http.StatusOK, map[string]any{"clientes": []domain.Cliente{}})
		return
	}
	like := "%" + query + "%"
	err := h.db.Select(&rows, `SELECT `+clienteColumns+` FROM clientes c
                WHERE c.nombre LIKE ? OR c.telefono LIKE ? ORDER BY c.nombre ASC LIMIT 20`, like, like)
	if err != nil {
		respondError(w, "No se pudieron buscar los clientes")
		return
	}
	clientes := make([]domain.Cliente, len(rows))
	for i, row := range rows {
		clientes[i] = row.toCliente()
	}
	respondSuccess(w, http.StatusOK, map[string]any{"clientes": clientes})
}

func (h *Handler) getCliente(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de cliente inválido")
		return
	}
	cliente, err := h.fetchCliente(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el cliente")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"cliente": cliente})
}

func (h *Handler) createCliente(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateClienteInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if strings.TrimSpace(input.Nombre) == "" || strings.TrimSpace(input.Telefono) == "" {
		respondFail(w, http.StatusBadRequest, "El nombre y el teléfono son requeridos")
		return
	}

	res, err := h.db.Exec(`INSERT INTO clientes (nombre, telefono, direccion, notas) VALUES (?, ?, ?, ?)`,
		input.Nombre, input.Telefono, input.Direccion, input.Notas)
	if err != nil {
		respondError(w, "No se pudo crear el cliente")
		return
	}
	id, _ := res.LastInsertId()
	cliente, err := h.fetchCliente(id)
	if err != nil {
		respondError(w, "No se pudo cargar el cliente creado")
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]any{"cliente": cliente})
}

func (h *Handler) updateCliente(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de cliente inválido")
		return
	}
	existing, err := h.fetchCliente(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el cliente")
		return
	}

	var input domain.UpdateClienteInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	// Partial update: blank fields keep their stored value.
	if input.Nombre == "" {
		input.Nombre = existing.Nombre
	}
	if input.Telefono == "" {
		input.Telefono = existing.Telefono
	}
	if input.Direccion == "" {
		input.Direccion = existing.Direccion
	}
	if input.Notas == "" {
		input.Notas = existing.Notas
	}

	_, err = h.db.Exec(`UPDATE clientes SET nombre = ?, telefono = ?, direccion = ?, notas = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Nombre, input.Telefono, input.Direccion, input.Notas, id)
	if err != nil {
		respondError(w, "No se pudo actualizar el cliente")
		return
	}
	cliente, err := h.fetchCliente(id)
	if err != nil {
		respondError(w, "No se pudo cargar el cliente actualizado")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"cliente": cliente})
}

func (h *Handler) deleteCliente(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de cliente inválido")
		return
	}
	var ventas int
	if err := h.db.Get(&ventas, `SELECT COUNT(*) FROM ventas WHERE cliente_id = ?`, id); err != nil {
		respondError(w, "No se pudo eliminar el cliente")
		return
	}
	if ventas > 0 {
		respondFail(w, http.StatusBadRequest, "No se puede eliminar un cliente con ventas registradas")
		return
	}
	res, err := h.db.Exec(`DELETE FROM clientes WHERE id = ?`, id)
	if err != nil {
		respondError(w, "No se pudo eliminar el cliente")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
		return
	}
	respondSuccess(w, http.StatusOK, nil)
}

func (h *Handler) clienteHistorial(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de cliente inválido")
		return
	}
	cliente, err := h.fetchCliente(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el cliente")
		return
	}

	var ventas []domain.Venta
	err = h.db.Select(&ventas, `SELECT id, cliente_id, metodo_pago_id, total, estado, direccion_entrega, notas, created_at, updated_at
                FROM ventas WHERE cliente_id = ? ORDER BY created_at DESC`, id)
	if err != nil {
		respondError(w, "No se pudieron cargar las ventas del cliente")
		return
	}
	if err := h.attachVentaRelations(ventas); err != nil {
		respondError(w, "No se pudieron cargar las ventas del cliente")
		return
	}
	if ventas == nil {
		ventas = []domain.Venta{}
	}

	// Voided sales stay in the history but not in the aggregates.
	var stats domain.ClienteEstadisticas
	err = h.db.QueryRow(`SELECT COALESCE(SUM(total), 0), COUNT(*) FROM ventas WHERE cliente_id = ? AND estado != ?`,
		id, domain.EstadoAnulada).Scan(&stats.TotalGastado, &stats.CantidadCompras)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	if stats.CantidadCompras > 0 {
		stats.TicketPromedio = stats.TotalGastado / float64(stats.CantidadCompras)
	}

	respondSuccess(w, http.StatusOK, domain.ClienteHistorial{
		Cliente:      *cliente,
		Ventas:       ventas,
		Estadisticas: stats,
	})
}
