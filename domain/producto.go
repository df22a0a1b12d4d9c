package domain

type Producto struct {
	ID           int64                 `db:"id" json:"id"`
	Nombre       string                `db:"nombre" json:"nombre"`
	Descripcion  string                `db:"descripcion" json:"descripcion,omitempty"`
	PrecioBase   float64               `db:"precio_base" json:"precioBase"`
	Activo       bool                  `db:"activo" json:"activo"`
	CreatedAt    string                `db:"created_at" json:"createdAt"`
	UpdatedAt    string                `db:"updated_at" json:"updatedAt"`
	Ingredientes []ProductoIngrediente `db:"-" json:"ingredientes,omitempty"`
}

// ProductoIngrediente associates an ingredient and quantity with a product
// recipe.
type ProductoIngrediente struct {
	ID            int64        `db:"id" json:"id"`
	ProductoID    int64        `db:"producto_id" json:"productoId"`
	IngredienteID int64        `db:"ingrediente_id" json:"ingredienteId"`
	Cantidad      float64      `db:"cantidad" json:"cantidad"`
	UnidadMedida  string       `db:"unidad_medida" json:"unidadMedida,omitempty"`
	Ingrediente   *Ingrediente `db:"-" json:"ingrediente,omitempty"`
}

// IngredienteAsignacion is one entry of PUT /productos/:id/ingredientes.
type IngredienteAsignacion struct {
	IngredienteID int64   `json:"ingredienteId"`
	Cantidad      float64 `json:"cantidad"`
	UnidadMedida  string  `json:"unidadMedida,omitempty"`
}

type CreateProductoInput struct {
	Nombre       string                  `json:"nombre"`
	Descripcion  string                  `json:"descripcion,omitempty"`
	PrecioBase   float64                 `json:"precioBase"`
	Ingredientes []IngredienteAsignacion `json:"ingredientes,omitempty"`
}

type UpdateProductoInput struct {
	Nombre      string  `json:"nombre,omitempty"`
	Descripcion string  `json:"descripcion,omitempty"`
	PrecioBase  float64 `json:"precioBase,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}

// ProductoResumen is the abbreviated product shape embedded in cost and
// dashboard payloads.
type ProductoResumen struct {
	ID         int64   `db:"id" json:"id"`
	Nombre     string  `db:"nombre" json:"nombre"`
	PrecioBase float64 `db:"precio_base" json:"precioBase"`
}

// ProductoCosto is the payload of GET /productos/:id/costo.
type ProductoCosto struct {
	Producto         ProductoResumen   `json:"producto"`
	CostoEstimado    float64           `json:"costoEstimado"`
	MargenGanancia   float64           `json:"margenGanancia"`
	PorcentajeMargen float64           `json:"porcentajeMargen"`
	Ingredientes     []CostoIngrediente `json:"ingredientes"`
}

type CostoIngrediente struct {
	Nombre        string  `db:"nombre" json:"nombre"`
	Cantidad      float64 `db:"cantidad" json:"cantidad"`
	CostoUnitario float64 `db:"costo_unitario" json:"costoUnitario"`
	CostoTotal    float64 `db:"costo_total" json:"costoTotal"`
}
