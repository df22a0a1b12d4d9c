package domain

// Venta states as reported by the API.
const (
	EstadoPendiente  = "pendiente"
	EstadoCompletada = "completada"
	EstadoEntregada  = "entregada"
	EstadoAnulada    = "anulada"
)

type Venta struct {
	ID               int64       `db:"id" json:"id"`
	ClienteID        int64       `db:"cliente_id" json:"clienteId"`
	MetodoPagoID     int64       `db:"metodo_pago_id" json:"metodoPagoId"`
	Total            float64     `db:"total" json:"total"`
	Estado           string      `db:"estado" json:"estado"`
	DireccionEntrega string      `db:"direccion_entrega" json:"direccionEntrega"`
	Notas            string      `db:"notas" json:"notas,omitempty"`
	CreatedAt        string      `db:"created_at" json:"createdAt"`
	UpdatedAt        string      `db:"updated_at" json:"updatedAt"`
	Cliente          *Cliente    `db:"-" json:"cliente,omitempty"`
	MetodoPago       *MetodoPago `db:"-" json:"metodoPago,omitempty"`
	Items            []VentaItem `db:"-" json:"items,omitempty"`
}

type VentaItem struct {
	ID             int64     `db:"id" json:"id"`
	VentaID        int64     `db:"venta_id" json:"ventaId"`
	ProductoID     int64     `db:"producto_id" json:"productoId,omitempty"`
	IngredienteID  int64     `db:"ingrediente_id" json:"ingredienteId,omitempty"`
	Cantidad       int64     `db:"cantidad" json:"cantidad"`
	PrecioUnitario float64   `db:"precio_unitario" json:"precioUnitario"`
	Subtotal       float64   `db:"subtotal" json:"subtotal"`
	Producto       *Producto `db:"-" json:"producto,omitempty"`
}

type CreateVentaInput struct {
	ClienteID        int64             `json:"clienteId"`
	MetodoPagoID     int64             `json:"metodoPagoId"`
	DireccionEntrega string            `json:"direccionEntrega"`
	Notas            string            `json:"notas,omitempty"`
	Items            []CreateVentaItem `json:"items"`
}

// CreateVentaItem references either a product or, for ad-hoc extra charges,
// an ingredient. Exactly one of the two ids is set.
type CreateVentaItem struct {
	ProductoID     int64   `json:"productoId,omitempty"`
	IngredienteID  int64   `json:"ingredienteId,omitempty"`
	Cantidad       int64   `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
}
