package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
)

// DashboardService wraps the read-only /dashboard endpoints.
type DashboardService struct {
	client *Client
}

// Estadisticas fetches the aggregated dashboard statistics, optionally
// restricted to a date range (YYYY-MM-DD).
func (s *DashboardService) Estadisticas(ctx context.Context, fechaInicio, fechaFin string) (*domain.DashboardStats, error) {
	v := url.Values{}
	if fechaInicio != "" {
		v.Set("fechaInicio", fechaInicio)
	}
	if fechaFin != "" {
		v.Set("fechaFin", fechaFin)
	}
	var payload domain.DashboardStats
	if err := s.client.get(ctx, "/dashboard/estadisticas", v, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// VentasDelDia fetches today's sales. A missing payload becomes an empty
// day rather than an error.
func (s *DashboardService) VentasDelDia(ctx context.Context) (*domain.VentasDelDia, error) {
	var payload domain.VentasDelDia
	if err := s.client.get(ctx, "/dashboard/ventas-del-dia", nil, &payload); err != nil {
		return nil, err
	}
	if payload.Fecha == "" {
		payload.Fecha = time.Now().Format(time.RFC3339)
	}
	if payload.Ventas == nil {
		payload.Ventas = []domain.Venta{}
	}
	return &payload, nil
}

// VentasPorMes fetches the monthly sales series for the last meses months
// (defaults to 6).
func (s *DashboardService) VentasPorMes(ctx context.Context, meses int) ([]domain.VentasMes, error) {
	if meses <= 0 {
		meses = 6
	}
	v := url.Values{}
	v.Set("meses", strconv.Itoa(meses))
	var payload []domain.VentasMes
	if err := s.client.get(ctx, "/dashboard/ventas-por-mes", v, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []domain.VentasMes{}
	}
	return payload, nil
}
