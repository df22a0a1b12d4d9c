package devapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

const ingredienteColumns = `id, nombre, costo_unitario, stock, unidad_medida, created_at, updated_at`

func (h *Handler) fetchIngrediente(id int64) (*domain.Ingrediente, error) {
	var ing domain.Ingrediente
	err := h.db.Get(&ing, `SELECT `+ingredienteColumns+` FROM ingredientes WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (h *Handler) listIngredientes(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	orderBy := "nombre ASC"
	if r.URL.Query().Get("orderBy") == "costoUnitario" {
		orderBy = "costo_unitario ASC"
	}

	var total int
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM ingredientes`); err != nil {
		respondError(w, "No se pudieron cargar los ingredientes")
		return
	}

	var ingredientes []domain.Ingrediente
	err := h.db.Select(&ingredientes, `SELECT `+ingredienteColumns+` FROM ingredientes ORDER BY `+orderBy+` LIMIT ? OFFSET ?`,
		limit, (page-1)*limit)
	if err != nil {
		respondError(w, "No se pudieron cargar los ingredientes")
		return
	}
	if ingredientes == nil {
		ingredientes = []domain.Ingrediente{}
	}
	respondSuccess(w, http.StatusOK, map[string]any{
		"ingredientes": ingredientes,
		"pagination":   paginationFor(total, page, limit),
	})
}

func (h *Handler) getIngrediente(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de ingrediente inválido")
		return
	}
	ing, err := h.fetchIngrediente(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Ingrediente no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el ingrediente")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"ingrediente": ing})
}

func (h *Handler) createIngrediente(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateIngredienteInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if strings.TrimSpace(input.Nombre) == "" || input.CostoUnitario <= 0 {
		respondFail(w, http.StatusBadRequest, "El nombre y un costo unitario positivo son requeridos")
		return
	}
	res, err := h.db.Exec(`INSERT INTO ingredientes (nombre, costo_unitario, stock, unidad_medida) VALUES (?, ?, ?, ?)`,
		input.Nombre, input.CostoUnitario, input.Stock, input.UnidadMedida)
	if err != nil {
		respondError(w, "No se pudo crear el ingrediente")
		return
	}
	id, _ := res.LastInsertId()
	ing, err := h.fetchIngrediente(id)
	if err != nil {
		respondError(w, "No se pudo cargar el ingrediente creado")
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]any{"ingrediente": ing})
}

func (h *Handler) updateIngrediente(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de ingrediente inválido")
		return
	}
	existing, err := h.fetchIngrediente(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Ingrediente no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el ingrediente")
		return
	}

	var input domain.UpdateIngredienteInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if input.Nombre == "" {
		input.Nombre = existing.Nombre
	}
	if input.CostoUnitario <= 0 {
		input.CostoUnitario = existing.CostoUnitario
	}
	if input.Stock == 0 {
		input.Stock = existing.Stock
	}
	if input.UnidadMedida == "" {
		input.UnidadMedida = existing.UnidadMedida
	}

	_, err = h.db.Exec(`UPDATE ingredientes SET nombre = ?, costo_unitario = ?, stock = ?, unidad_medida = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Nombre, input.CostoUnitario, input.Stock, input.UnidadMedida, id)
	if err != nil {
		respondError(w, "No se pudo actualizar el ingrediente")
		return
	}
	ing, err := h.fetchIngrediente(id)
	if err != nil {
		respondError(w, "No se pudo cargar el ingrediente actualizado")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"ingrediente": ing})
}

func (h *Handler) deleteIngrediente(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de ingrediente inválido")
		return
	}
	var usos int
	if err := h.db.Get(&usos, `SELECT COUNT(*) FROM producto_ingredientes WHERE ingrediente_id = ?`, id); err != nil {
		respondError(w, "No se pudo eliminar el ingrediente")
		return
	}
	if usos > 0 {
		respondFail(w, http.StatusBadRequest, "No se puede eliminar un ingrediente usado por productos")
		return
	}
	res, err := h.db.Exec(`DELETE FROM ingredientes WHERE id = ?`, id)
	if err != nil {
		respondError(w, "No se pudo eliminar el ingrediente")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondFail(w, http.StatusNotFound, "Ingrediente no encontrado")
		return
	}
	respondSuccess(w, http.StatusOK, nil)
}
