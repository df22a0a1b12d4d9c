package domain

// DashboardStats is the payload of GET /dashboard/estadisticas.
type DashboardStats struct {
	Resumen               DashboardResumen    `json:"resumen"`
	VentasPorDia          []VentaDia          `json:"ventasPorDia"`
	ProductosMasVendidos  []ProductoRanking   `json:"productosMasVendidos"`
	ClientesMasFrecuentes []ClienteRanking    `json:"clientesMasFrecuentes"`
	VentasPorMetodoPago   []MetodoPagoRanking `json:"ventasPorMetodoPago"`
}

type DashboardResumen struct {
	VentasMes               float64 `json:"ventasMes"`
	CantidadVentasMes       int     `json:"cantidadVentasMes"`
	VentasMesAnterior       float64 `json:"ventasMesAnterior"`
	DiferenciaVsMesAnterior float64 `json:"diferenciaVsMesAnterior"`
	VentasHoy               float64 `json:"ventasHoy"`
	CantidadVentasHoy       int     `json:"cantidadVentasHoy"`
	VentasHoyHaceUnMes      float64 `json:"ventasHoyHaceUnMes"`
	DiferenciaVsHaceUnMes   float64 `json:"diferenciaVsHaceUnMes"`
	TotalClientes           int     `json:"totalClientes"`
	TotalVentas             float64 `json:"totalVentas"`
	CantidadVentas          int     `json:"cantidadVentas"`
	PromedioVenta           float64 `json:"promedioVenta"`
}

type VentaDia struct {
	Fecha    string  `db:"fecha" json:"fecha"`
	Total    float64 `db:"total" json:"total"`
	Cantidad int     `db:"cantidad" json:"cantidad"`
}

type ProductoRanking struct {
	Producto        ProductoResumen `json:"producto"`
	CantidadVendida int64           `json:"cantidadVendida"`
	TotalGenerado   float64         `json:"totalGenerado"`
}

// ClienteResumen is the abbreviated client shape embedded in rankings.
type ClienteResumen struct {
	ID       int64  `db:"id" json:"id"`
	Nombre   string `db:"nombre" json:"nombre"`
	Telefono string `db:"telefono" json:"telefono"`
}

type ClienteRanking struct {
	Cliente         ClienteResumen `json:"cliente"`
	CantidadCompras int            `json:"cantidadCompras"`
	TotalGastado    float64        `json:"totalGastado"`
}

type MetodoPagoRanking struct {
	MetodoPago     MetodoPagoResumen `json:"metodoPago"`
	CantidadVentas int               `json:"cantidadVentas"`
	TotalGenerado  float64           `json:"totalGenerado"`
}

// VentasDelDia is the payload of GET /dashboard/ventas-del-dia.
type VentasDelDia struct {
	Fecha          string  `json:"fecha"`
	CantidadVentas int     `json:"cantidadVentas"`
	TotalDelDia    float64 `json:"totalDelDia"`
	Ventas         []Venta `json:"ventas"`
}

// VentasMes is one entry of GET /dashboard/ventas-por-mes.
type VentasMes struct {
	Mes            string  `db:"mes" json:"mes"`
	MesCompleto    string  `db:"-" json:"mesCompleto"`
	CantidadVentas int     `db:"cantidad" json:"cantidadVentas"`
	MontoTotal     float64 `db:"monto" json:"montoTotal"`
}
