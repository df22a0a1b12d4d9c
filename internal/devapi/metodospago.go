package devapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

const metodoPagoColumns = `id, nombre, activo, created_at, updated_at`

func (h *Handler) fetchMetodoPago(id int64) (*domain.MetodoPago, error) {
	var metodo domain.MetodoPago
	err := h.db.Get(&metodo, `SELECT `+metodoPagoColumns+` FROM metodos_pago WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &metodo, nil
}

func (h *Handler) listMetodosPago(w http.ResponseWriter, r *http.Request) {
	var metodos []domain.MetodoPago
	err := h.db.Select(&metodos, `SELECT `+metodoPagoColumns+` FROM metodos_pago ORDER BY nombre ASC`)
	if err != nil {
		respondError(w, "No se pudieron cargar los métodos de pago")
		return
	}
	if metodos == nil {
		metodos = []domain.MetodoPago{}
	}
	respondSuccess(w, http.StatusOK, map[string]any{"metodosPago": metodos})
}

func (h *Handler) getMetodoPago(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de método de pago inválido")
		return
	}
	metodo, err := h.fetchMetodoPago(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Método de pago no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el método de pago")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"metodoPago": metodo})
}

func (h *Handler) createMetodoPago(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateMetodoPagoInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if strings.TrimSpace(input.Nombre) == "" {
		respondFail(w, http.StatusBadRequest, "El nombre es requerido")
		return
	}
	activo := true
	if input.Activo != nil {
		activo = *input.Activo
	}
	res, err := h.db.Exec(`INSERT INTO metodos_pago (nombre, activo) VALUES (?, ?)`, input.Nombre, activo)
	if err != nil {
		respondFail(w, http.StatusConflict, "Ya existe un método de pago con ese nombre")
		return
	}
	id, _ := res.LastInsertId()
	metodo, err := h.fetchMetodoPago(id)
	if err != nil {
		respondError(w, "No se pudo cargar el método de pago creado")
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]any{"metodoPago": metodo})
}

func (h *Handler) updateMetodoPago(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de método de pago inválido")
		return
	}
	existing, err := h.fetchMetodoPago(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Método de pago no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el método de pago")
		return
	}

	var input domain.UpdateMetodoPagoInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if input.Nombre == "" {
		input.Nombre = existing.Nombre
	}
	activo := existing.Activo
	if input.Activo != nil {
		activo = *input.Activo
	}

	_, err = h.db.Exec(`UPDATE metodos_pago SET nombre = ?, activo = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Nombre, activo, id)
	if err != nil {
		respondError(w, "No se pudo actualizar el método de pago")
		return
	}
	metodo, err := h.fetchMetodoPago(id)
	if err != nil {
		respondError(w, "No se pudo cargar el método de pago actualizado")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"metodoPago": metodo})
}

func (h *Handler) deleteMetodoPago(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de método de pago inválido")
		return
	}
	var usos int
	if err := h.db.Get(&usos, `SELECT COUNT(*) FROM ventas WHERE metodo_pago_id = ?`, id); err != nil {
		respondError(w, "No se pudo eliminar el método de pago")
		return
	}
	if usos > 0 {
		respondFail(w, http.StatusBadRequest, "No se puede eliminar un método de pago con ventas registradas")
		return
	}
	res, err := h.db.Exec(`DELETE FROM metodos_pago WHERE id = ?`, id)
	if err != nil {
		respondError(w, "No se pudo eliminar el método de pago")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondFail(w, http.StatusNotFound, "Método de pago no encontrado")
		return
	}
	respondSuccess(w, http.StatusOK, nil)
}
