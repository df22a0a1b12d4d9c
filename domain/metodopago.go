package domain

type MetodoPago struct {
	ID        int64  `db:"id" json:"id"`
	Nombre    string `db:"nombre" json:"nombre"`
	Activo    bool   `db:"activo" json:"activo"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type CreateMetodoPagoInput struct {
	Nombre string `json:"nombre"`
	Activo *bool  `json:"activo,omitempty"`
}

type UpdateMetodoPagoInput struct {
	Nombre string `json:"nombre,omitempty"`
	Activo *bool  `json:"activo,omitempty"`
}

// MetodoPagoResumen is the abbreviated shape embedded in dashboard payloads.
type MetodoPagoResumen struct {
	ID     int64  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}
