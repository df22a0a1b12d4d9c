package devapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// Sales in estado anulada never count toward dashboard figures.
const noAnuladas = `estado != 'anulada'`

var mesesCortos = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

var mesesCompletos = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type montoCantidad struct {
	Monto    float64 `db:"monto"`
	Cantidad int     `db:"cantidad"`
}

func (h *Handler) sumVentas(where string, args ...any) (montoCantidad, error) {
	var row montoCantidad
	err := h.db.Get(&row, `SELECT COALESCE(SUM(total), 0) AS monto, COUNT(*) AS cantidad FROM ventas WHERE `+noAnuladas+` AND `+where, args...)
	return row, err
}

func (h *Handler) dashboardEstadisticas(w http.ResponseWriter, r *http.Request) {
	// Clauses qualify the ventas alias so they stay unambiguous in the
	// ranking joins below.
	var (
		clauses = "v." + noAnuladas
		args    []any
	)
	if fechaInicio := r.URL.Query().Get("fechaInicio"); fechaInicio != "" {
		if _, err := time.Parse("2006-01-02", fechaInicio); err != nil {
			respondFail(w, http.StatusBadRequest, "fechaInicio debe tener formato YYYY-MM-DD")
			return
		}
		clauses += " AND DATE(v.created_at) >= ?"
		args = append(args, fechaInicio)
	}
	if fechaFin := r.URL.Query().Get("fechaFin"); fechaFin != "" {
		if _, err := time.Parse("2006-01-02", fechaFin); err != nil {
			respondFail(w, http.StatusBadRequest, "fechaFin debe tener formato YYYY-MM-DD")
			return
		}
		clauses += " AND DATE(v.created_at) <= ?"
		args = append(args, fechaFin)
	}

	var stats domain.DashboardStats

	mes, err := h.sumVentas(`strftime('%Y-%m', created_at) = strftime('%Y-%m', 'now')`)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	mesAnterior, err := h.sumVentas(`strftime('%Y-%m', created_at) = strftime('%Y-%m', 'now', '-1 month')`)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	hoy, err := h.sumVentas(`DATE(created_at) = DATE('now')`)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	hoyHaceUnMes, err := h.sumVentas(`DATE(created_at) = DATE('now', '-1 month')`)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}

	stats.Resumen.VentasMes = mes.Monto
	stats.Resumen.CantidadVentasMes = mes.Cantidad
	stats.Resumen.VentasMesAnterior = mesAnterior.Monto
	stats.Resumen.DiferenciaVsMesAnterior = mes.Monto - mesAnterior.Monto
	stats.Resumen.VentasHoy = hoy.Monto
	stats.Resumen.CantidadVentasHoy = hoy.Cantidad
	stats.Resumen.VentasHoyHaceUnMes = hoyHaceUnMes.Monto
	stats.Resumen.DiferenciaVsHaceUnMes = hoy.Monto - hoyHaceUnMes.Monto

	if err := h.db.Get(&stats.Resumen.TotalClientes, `SELECT COUNT(*) FROM clientes`); err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}

	var totales montoCantidad
	err = h.db.Get(&totales, `SELECT COALESCE(SUM(v.total), 0) AS monto, COUNT(*) AS cantidad FROM ventas v WHERE `+clauses, args...)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	stats.Resumen.TotalVentas = totales.Monto
	stats.Resumen.CantidadVentas = totales.Cantidad
	if totales.Cantidad > 0 {
		stats.Resumen.PromedioVenta = totales.Monto / float64(totales.Cantidad)
	}

	stats.VentasPorDia = []domain.VentaDia{}
	err = h.db.Select(&stats.VentasPorDia, `SELECT DATE(v.created_at) AS fecha, COALESCE(SUM(v.total), 0) AS total, COUNT(*) AS cantidad
                FROM ventas v WHERE `+clauses+` GROUP BY DATE(v.created_at) ORDER BY fecha ASC`, args...)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}

	type productoVendido struct {
		domain.ProductoResumen
		CantidadVendida int64   `db:"cantidad_vendida"`
		TotalGenerado   float64 `db:"total_generado"`
	}
	var productos []productoVendido
	err = h.db.Select(&productos, `SELECT p.id, p.nombre, p.precio_base, SUM(vi.cantidad) AS cantidad_vendida, COALESCE(SUM(vi.subtotal), 0) AS total_generado
                FROM venta_items vi
                JOIN productos p ON p.id = vi.producto_id
                JOIN ventas v ON v.id = vi.venta_id
                WHERE `+clauses+`
                GROUP BY p.id ORDER BY cantidad_vendida DESC LIMIT 5`, args...)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	stats.ProductosMasVendidos = []domain.ProductoRanking{}
	for _, p := range productos {
		stats.ProductosMasVendidos = append(stats.ProductosMasVendidos, domain.ProductoRanking{
			Producto:        p.ProductoResumen,
			CantidadVendida: p.CantidadVendida,
			TotalGenerado:   p.TotalGenerado,
		})
	}

	type clienteFrecuente struct {
		domain.ClienteResumen
		CantidadCompras int     `db:"cantidad_compras"`
		TotalGastado    float64 `db:"total_gastado"`
	}
	var clientes []clienteFrecuente
	err = h.db.Select(&clientes, `SELECT c.id, c.nombre, c.telefono, COUNT(*) AS cantidad_compras, COALESCE(SUM(v.total), 0) AS total_gastado
                FROM ventas v
                JOIN clientes c ON c.id = v.cliente_id
                WHERE `+clauses+`
                GROUP BY c.id ORDER BY cantidad_compras DESC LIMIT 5`, args...)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	stats.ClientesMasFrecuentes = []domain.ClienteRanking{}
	for _, c := range clientes {
		stats.ClientesMasFrecuentes = append(stats.ClientesMasFrecuentes, domain.ClienteRanking{
			Cliente:         c.ClienteResumen,
			CantidadCompras: c.CantidadCompras,
			TotalGastado:    c.TotalGastado,
		})
	}

	type metodoUsado struct {
		domain.MetodoPagoResumen
		CantidadVentas int     `db:"cantidad_ventas"`
		TotalGenerado  float64 `db:"total_generado"`
	}
	var metodos []metodoUsado
	err = h.db.Select(&metodos, `SELECT m.id, m.nombre, COUNT(*) AS cantidad_ventas, COALESCE(SUM(v.total), 0) AS total_generado
                FROM ventas v
                JOIN metodos_pago m ON m.id = v.metodo_pago_id
                WHERE `+clauses+`
                GROUP BY m.id ORDER BY total_generado DESC`, args...)
	if err != nil {
		respondError(w, "No se pudieron calcular las estadísticas")
		return
	}
	stats.VentasPorMetodoPago = []domain.MetodoPagoRanking{}
	for _, m := range metodos {
		stats.VentasPorMetodoPago = append(stats.VentasPorMetodoPago, domain.MetodoPagoRanking{
			MetodoPago:     m.MetodoPagoResumen,
			CantidadVentas: m.CantidadVentas,
			TotalGenerado:  m.TotalGenerado,
		})
	}

	respondSuccess(w, http.StatusOK, stats)
}

func (h *Handler) ventasDelDia(w http.ResponseWriter, r *http.Request) {
	hoy := time.Now().Format("2006-01-02")

	var ventas []domain.Venta
	err := h.db.Select(&ventas, `SELECT `+ventaColumns+` FROM ventas WHERE DATE(created_at) = DATE('now') ORDER BY created_at DESC`)
	if err != nil {
		respondError(w, "No se pudieron cargar las ventas del día")
		return
	}
	if err := h.attachVentaRelations(ventas); err != nil {
		respondError(w, "No se pudieron cargar las ventas del día")
		return
	}
	if ventas == nil {
		ventas = []domain.Venta{}
	}

	resumen := domain.VentasDelDia{Fecha: hoy, Ventas: ventas}
	for _, v := range ventas {
		if v.Estado == domain.EstadoAnulada {
			continue
		}
		resumen.CantidadVentas++
		resumen.TotalDelDia += v.Total
	}
	respondSuccess(w, http.StatusOK, resumen)
}

func (h *Handler) ventasPorMes(w http.ResponseWriter, r *http.Request) {
	meses := 6
	if raw := r.URL.Query().Get("meses"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondFail(w, http.StatusBadRequest, "meses debe ser un entero positivo")
			return
		}
		meses = n
	}

	type mesRow struct {
		Mes      string  `db:"mes"`
		Monto    float64 `db:"monto"`
		Cantidad int     `db:"cantidad"`
	}
	var rows []mesRow
	err := h.db.Select(&rows, `SELECT strftime('%Y-%m', created_at) AS mes, COALESCE(SUM(total), 0) AS monto, COUNT(*) AS cantidad
                FROM ventas WHERE `+noAnuladas+` GROUP BY mes`)
	if err != nil {
		respondError(w, "No se pudieron cargar las ventas por mes")
		return
	}
	porMes := make(map[string]mesRow, len(rows))
	for _, row := range rows {
		porMes[row.Mes] = row
	}

	// Walk back month by month so months without sales still appear with zeros.
	resultado := make([]domain.VentasMes, 0, meses)
	ahora := time.Now()
	primerDia := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := meses - 1; i >= 0; i-- {
		mes := primerDia.AddDate(0, -i, 0)
		clave := mes.Format("2006-01")
		row := porMes[clave]
		resultado = append(resultado, domain.VentasMes{
			Mes:            mesesCortos[mes.Month()-1] + " " + strconv.Itoa(mes.Year()),
			MesCompleto:    mesesCompletos[mes.Month()-1] + " " + strconv.Itoa(mes.Year()),
			CantidadVentas: row.Cantidad,
			MontoTotal:     row.Monto,
		})
	}
	respondSuccess(w, http.StatusOK, resultado)
}
