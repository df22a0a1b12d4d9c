package domain

type Cliente struct {
	ID        int64         `db:"id" json:"id"`
	Nombre    string        `db:"nombre" json:"nombre"`
	Telefono  string        `db:"telefono" json:"telefono"`
	Direccion string        `db:"direccion" json:"direccion,omitempty"`
	Notas     string        `db:"notas" json:"notas,omitempty"`
	CreatedAt string        `db:"created_at" json:"createdAt"`
	UpdatedAt string        `db:"updated_at" json:"updatedAt"`
	Count     *ClienteCount `db:"-" json:"_count,omitempty"`
}

// ClienteCount carries server-computed relation counts.
type ClienteCount struct {
	Ventas int `json:"ventas"`
}

type CreateClienteInput struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion,omitempty"`
	Notas     string `json:"notas,omitempty"`
}

type UpdateClienteInput struct {
	Nombre    string `json:"nombre,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Notas     string `json:"notas,omitempty"`
}

// ClienteHistorial is the payload of GET /clientes/:id/ventas.
type ClienteHistorial struct {
	Cliente      Cliente             `json:"cliente"`
	Ventas       []Venta             `json:"ventas"`
	Estadisticas ClienteEstadisticas `json:"estadisticas"`
}

type ClienteEstadisticas struct {
	TotalGastado    float64 `json:"totalGastado"`
	CantidadCompras int     `json:"cantidadCompras"`
	TicketPromedio  float64 `json:"ticketPromedio"`
}
