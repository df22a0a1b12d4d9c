package devapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

const productoColumns = `id, nombre, descripcion, precio_base, activo, created_at, updated_at`

func (h *Handler) fetchProducto(id int64) (*domain.Producto, error) {
	var producto domain.Producto
	err := h.db.Get(&producto, `SELECT `+productoColumns+` FROM productos WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if err := h.attachRecetas(&producto); err != nil {
		return nil, err
	}
	return &producto, nil
}

// attachRecetas loads the product's ingredient associations with their
// ingredient records.
func (h *Handler) attachRecetas(producto *domain.Producto) error {
	var asociaciones []domain.ProductoIngrediente
	err := h.db.Select(&asociaciones, `SELECT id, producto_id, ingrediente_id, cantidad, unidad_medida
                FROM producto_ingredientes WHERE producto_id = ? ORDER BY id ASC`, producto.ID)
	if err != nil {
		return err
	}
	for i := range asociaciones {
		var ing domain.Ingrediente
		err := h.db.Get(&ing, `SELECT id, nombre, costo_unitario, stock, unidad_medida, created_at, updated_at
                        FROM ingredientes WHERE id = ?`, asociaciones[i].IngredienteID)
		if err == nil {
			asociaciones[i].Ingrediente = &ing
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}
	producto.Ingredientes = asociaciones
	return nil
}

func (h *Handler) listProductos(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	where := ""
	args := []any{}
	switch r.URL.Query().Get("activo") {
	case "true":
		where = " WHERE activo = 1"
	case "false":
		where = " WHERE activo = 0"
	}

	var total int
	if err := h.db.Get(&total, `SELECT COUNT(*) FROM productos`+where, args...); err != nil {
		respondError(w, "No se pudieron cargar los productos")
		return
	}

	var productos []domain.Producto
	args = append(args, limit, (page-1)*limit)
	err := h.db.Select(&productos, `SELECT `+productoColumns+` FROM productos`+where+` ORDER BY nombre ASC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		respondError(w, "No se pudieron cargar los productos")
		return
	}
	if productos == nil {
		productos = []domain.Producto{}
	}
	respondSuccess(w, http.StatusOK, map[string]any{
		"productos":  productos,
		"pagination": paginationFor(total, page, limit),
	})
}

func (h *Handler) getProducto(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de producto inválido")
		return
	}
	producto, err := h.fetchProducto(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el producto")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"producto": producto})
}

func (h *Handler) createProducto(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateProductoInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if strings.TrimSpace(input.Nombre) == "" || input.PrecioBase <= 0 {
		respondFail(w, http.StatusBadRequest, "El nombre y un precio base positivo son requeridos")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, "No se pudo crear el producto")
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO productos (nombre, descripcion, precio_base) VALUES (?, ?, ?)`,
		input.Nombre, input.Descripcion, input.PrecioBase)
	if err != nil {
		respondError(w, "No se pudo crear el producto")
		return
	}
	id, _ := res.LastInsertId()

	for _, asignacion := range input.Ingredientes {
		if asignacion.IngredienteID == 0 || asignacion.Cantidad <= 0 {
			respondFail(w, http.StatusBadRequest, "Cada ingrediente requiere id y cantidad positiva")
			return
		}
		_, err := tx.Exec(`INSERT INTO producto_ingredientes (producto_id, ingrediente_id, cantidad, unidad_medida) VALUES (?, ?, ?, ?)`,
			id, asignacion.IngredienteID, asignacion.Cantidad, asignacion.UnidadMedida)
		if err != nil {
			respondError(w, "No se pudieron asociar los ingredientes")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, "No se pudo crear el producto")
		return
	}

	producto, err := h.fetchProducto(id)
	if err != nil {
		respondError(w, "No se pudo cargar el producto creado")
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]any{"producto": producto})
}

func (h *Handler) updateProducto(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de producto inválido")
		return
	}
	existing, err := h.fetchProducto(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el producto")
		return
	}

	var input domain.UpdateProductoInput
	if err := decodeJSON(r, &input); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if input.Nombre == "" {
		input.Nombre = existing.Nombre
	}
	if input.Descripcion == "" {
		input.Descripcion = existing.Descripcion
	}
	if input.PrecioBase <= 0 {
		input.PrecioBase = existing.PrecioBase
	}
	activo := existing.Activo
	if input.Activo != nil {
		activo = *input.Activo
	}

	_, err = h.db.Exec(`UPDATE productos SET nombre = ?, descripcion = ?, precio_base = ?, activo = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Nombre, input.Descripcion, input.PrecioBase, activo, id)
	if err != nil {
		respondError(w, "No se pudo actualizar el producto")
		return
	}
	producto, err := h.fetchProducto(id)
	if err != nil {
		respondError(w, "No se pudo cargar el producto actualizado")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"producto": producto})
}

func (h *Handler) deleteProducto(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de producto inválido")
		return
	}
	var usos int
	if err := h.db.Get(&usos, `SELECT COUNT(*) FROM venta_items WHERE producto_id = ?`, id); err != nil {
		respondError(w, "No se pudo eliminar el producto")
		return
	}
	if usos > 0 {
		respondFail(w, http.StatusBadRequest, "No se puede eliminar un producto con ventas registradas")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, "No se pudo eliminar el producto")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM producto_ingredientes WHERE producto_id = ?`, id); err != nil {
		respondError(w, "No se pudo eliminar el producto")
		return
	}
	res, err := tx.Exec(`DELETE FROM productos WHERE id = ?`, id)
	if err != nil {
		respondError(w, "No se pudo eliminar el producto")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondFail(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	if err := tx.Commit(); err != nil {
		respondError(w, "No se pudo eliminar el producto")
		return
	}
	respondSuccess(w, http.StatusOK, nil)
}

func (h *Handler) productoCosto(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de producto inválido")
		return
	}
	producto, err := h.fetchProducto(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	if err != nil {
		respondError(w, "No se pudo cargar el producto")
		return
	}

	var detalle []domain.CostoIngrediente
	err = h.db.Select(&detalle, `SELECT i.nombre, pi.cantidad, i.costo_unitario, (pi.cantidad * i.costo_unitario) AS costo_total
                FROM producto_ingredientes pi
                JOIN ingredientes i ON i.id = pi.ingrediente_id
                WHERE pi.producto_id = ? ORDER BY i.nombre ASC`, id)
	if err != nil {
		respondError(w, "No se pudo calcular el costo")
		return
	}
	if detalle == nil {
		detalle = []domain.CostoIngrediente{}
	}

	var costo float64
	for _, d := range detalle {
		costo += d.CostoTotal
	}
	margen := producto.PrecioBase - costo
	porcentaje := 0.0
	if producto.PrecioBase > 0 {
		porcentaje = margen / producto.PrecioBase * 100
	}

	respondSuccess(w, http.StatusOK, domain.ProductoCosto{
		Producto: domain.ProductoResumen{
			ID:         producto.ID,
			Nombre:     producto.Nombre,
			PrecioBase: producto.PrecioBase,
		},
		CostoEstimado:    costo,
		MargenGanancia:   margen,
		PorcentajeMargen: porcentaje,
		Ingredientes:     detalle,
	})
}

func (h *Handler) assignIngredientes(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondFail(w, http.StatusBadRequest, "Id de producto inválido")
		return
	}
	if _, err := h.fetchProducto(id); errors.Is(err, sql.ErrNoRows) {
		respondFail(w, http.StatusNotFound, "Producto no encontrado")
		return
	} else if err != nil {
		respondError(w, "No se pudo cargar el producto")
		return
	}

	var body struct {
		Ingredientes []domain.IngredienteAsignacion `json:"ingredientes"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondFail(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, "No se pudieron asignar los ingredientes")
		return
	}
	defer tx.Rollback()

	// The assignment replaces the whole recipe.
	if _, err := tx.Exec(`DELETE FROM producto_ingredientes WHERE producto_id = ?`, id); err != nil {
		respondError(w, "No se pudieron asignar los ingredientes")
		return
	}
	for _, asignacion := range body.Ingredientes {
		if asignacion.IngredienteID == 0 || asignacion.Cantidad <= 0 {
			respondFail(w, http.StatusBadRequest, "Cada ingrediente requiere id y cantidad positiva")
			return
		}
		_, err := tx.Exec(`INSERT INTO producto_ingredientes (producto_id, ingrediente_id, cantidad, unidad_medida) VALUES (?, ?, ?, ?)`,
			id, asignacion.IngredienteID, asignacion.Cantidad, asignacion.UnidadMedida)
		if err != nil {
			respondError(w, "No se pudieron asignar los ingredientes")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		respondError(w, "No se pudieron asignar los ingredientes")
		return
	}

	producto, err := h.fetchProducto(id)
	if err != nil {
		respondError(w, "No se pudo cargar el producto actualizado")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]any{"producto": producto})
}
