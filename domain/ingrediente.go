package domain

type Ingrediente struct {
	ID            int64   `db:"id" json:"id"`
	Nombre        string  `db:"nombre" json:"nombre"`
	CostoUnitario float64 `db:"costo_unitario" json:"costoUnitario"`
	Stock         float64 `db:"stock" json:"stock,omitempty"`
	UnidadMedida  string  `db:"unidad_medida" json:"unidadMedida,omitempty"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt"`
}

type CreateIngredienteInput struct {
	Nombre        string  `json:"nombre"`
	CostoUnitario float64 `json:"costoUnitario"`
	Stock         float64 `json:"stock,omitempty"`
	UnidadMedida  string  `json:"unidadMedida,omitempty"`
}

type UpdateIngredienteInput struct {
	Nombre        string  `json:"nombre,omitempty"`
	CostoUnitario float64 `json:"costoUnitario,omitempty"`
	Stock         float64 `json:"stock,omitempty"`
	UnidadMedida  string  `json:"unidadMedida,omitempty"`
}
