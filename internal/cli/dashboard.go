package cli

import (
	"context"
	"flag"
	"fmt"
)

func (a *App) runDashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fechaInicio := fs.String("desde", "", "fecha inicial YYYY-MM-DD")
	fechaFin := fs.String("hasta", "", "fecha final YYYY-MM-DD")
	meses := fs.Int("meses", 6, "meses de la serie mensual")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := a.client.Dashboard.Estadisticas(ctx, *fechaInicio, *fechaFin)
	if err != nil {
		return err
	}
	dia, err := a.client.Dashboard.VentasDelDia(ctx)
	if err != nil {
		return err
	}
	porMes, err := a.client.Dashboard.VentasPorMes(ctx, *meses)
	if err != nil {
		return err
	}

	r := stats.Resumen
	a.printf("Hoy: %s en %d ventas (%+.2f vs hace un mes)\n", money(r.VentasHoy), r.CantidadVentasHoy, r.DiferenciaVsHaceUnMes)
	a.printf("Mes: %s en %d ventas (%+.2f vs mes anterior)\n", money(r.VentasMes), r.CantidadVentasMes, r.DiferenciaVsMesAnterior)
	a.printf("Histórico: %s en %d ventas, promedio %s, %d clientes\n",
		money(r.TotalVentas), r.CantidadVentas, money(r.PromedioVenta), r.TotalClientes)

	if len(stats.ProductosMasVendidos) > 0 {
		a.printf("\nProductos más vendidos\n")
		w := a.table()
		fmt.Fprintln(w, "PRODUCTO\tCANTIDAD\tTOTAL")
		for _, p := range stats.ProductosMasVendidos {
			fmt.Fprintf(w, "%s\t%d\t%s\n", p.Producto.Nombre, p.CantidadVendida, money(p.TotalGenerado))
		}
		w.Flush()
	}

	if len(stats.ClientesMasFrecuentes) > 0 {
		a.printf("\nClientes más frecuentes\n")
		w := a.table()
		fmt.Fprintln(w, "CLIENTE\tCOMPRAS\tTOTAL")
		for _, c := range stats.ClientesMasFrecuentes {
			fmt.Fprintf(w, "%s\t%d\t%s\n", c.Cliente.Nombre, c.CantidadCompras, money(c.TotalGastado))
		}
		w.Flush()
	}

	if len(stats.VentasPorMetodoPago) > 0 {
		a.printf("\nVentas por método de pago\n")
		w := a.table()
		fmt.Fprintln(w, "MÉTODO\tVENTAS\tTOTAL")
		for _, m := range stats.VentasPorMetodoPago {
			fmt.Fprintf(w, "%s\t%d\t%s\n", m.MetodoPago.Nombre, m.CantidadVentas, money(m.TotalGenerado))
		}
		w.Flush()
	}

	a.printf("\nVentas del día (%s): %d por %s\n", dia.Fecha, dia.CantidadVentas, money(dia.TotalDelDia))
	if len(dia.Ventas) > 0 {
		a.renderVentas(dia.Ventas)
	}

	if len(porMes) > 0 {
		a.printf("\nVentas por mes\n")
		w := a.table()
		fmt.Fprintln(w, "MES\tVENTAS\tTOTAL")
		for _, m := range porMes {
			fmt.Fprintf(w, "%s\t%d\t%s\n", m.Mes, m.CantidadVentas, money(m.MontoTotal))
		}
		w.Flush()
	}
	return nil
}
