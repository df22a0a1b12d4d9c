package devapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	Migrate(db)
	Seed(db)

	server := httptest.NewServer(New(db).Router())
	t.Cleanup(server.Close)
	return api.New(server.URL + "/api")
}

func apiMessage(t *testing.T, err error) string {
	t.Helper()
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.APIError", err)
	}
	return apiErr.Message
}

func TestClienteLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	created, err := client.Clientes.Create(ctx, domain.CreateClienteInput{
		Nombre:    "Ana Pérez",
		Telefono:  "555-0101",
		Direccion: "Calle 1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.Count == nil || created.Count.Ventas != 0 {
		t.Fatalf("created = %+v", created)
	}

	// Partial update keeps the fields the input leaves blank.
	updated, err := client.Clientes.Update(ctx, created.ID, domain.UpdateClienteInput{Telefono: "555-0202"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Nombre != "Ana Pérez" || updated.Telefono != "555-0202" {
		t.Fatalf("updated = %+v", updated)
	}

	found, err := client.Clientes.Search(ctx, "ana")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Fatalf("search = %+v", found)
	}

	vacio, err := client.Clientes.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search empty: %v", err)
	}
	if len(vacio) != 0 {
		t.Fatalf("empty search = %+v", vacio)
	}

	if err := client.Clientes.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = client.Clientes.Get(ctx, created.ID)
	if got := apiMessage(t, err); got != "Cliente no encontrado" {
		t.Fatalf("message = %q", got)
	}

	if _, err := client.Clientes.Create(ctx, domain.CreateClienteInput{Nombre: "Sin Teléfono"}); err == nil {
		t.Fatal("create without phone must fail")
	}
}

func TestVentaFlow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	cliente, err := client.Clientes.Create(ctx, domain.CreateClienteInput{
		Nombre: "Luis", Telefono: "555", Direccion: "Av. Siempreviva 742",
	})
	if err != nil {
		t.Fatalf("create cliente: %v", err)
	}

	metodos, err := client.MetodosPago.List(ctx)
	if err != nil {
		t.Fatalf("list metodos: %v", err)
	}
	if len(metodos) != 3 {
		t.Fatalf("seeded metodos = %d, want 3", len(metodos))
	}

	producto, err := client.Productos.Create(ctx, domain.CreateProductoInput{
		Nombre: "Pizza Muzzarella", PrecioBase: 8000,
	})
	if err != nil {
		t.Fatalf("create producto: %v", err)
	}

	venta, err := client.Ventas.Create(ctx, domain.CreateVentaInput{
		ClienteID:        cliente.ID,
		MetodoPagoID:     metodos[0].ID,
		DireccionEntrega: "Av. Siempreviva 742",
		Items: []domain.CreateVentaItem{
			{ProductoID: producto.ID, Cantidad: 2, PrecioUnitario: 8000},
		},
	})
	if err != nil {
		t.Fatalf("create venta: %v", err)
	}
	if venta.Total != 16000 || venta.Estado != domain.EstadoPendiente {
		t.Fatalf("venta = %+v", venta)
	}
	if venta.Cliente == nil || venta.Cliente.Nombre != "Luis" {
		t.Fatalf("venta.Cliente = %+v", venta.Cliente)
	}
	if len(venta.Items) != 1 || venta.Items[0].Subtotal != 16000 {
		t.Fatalf("venta.Items = %+v", venta.Items)
	}
	if venta.Items[0].Producto == nil || venta.Items[0].Producto.Nombre != "Pizza Muzzarella" {
		t.Fatalf("item producto = %+v", venta.Items[0].Producto)
	}

	// A client with sales cannot be removed.
	err = client.Clientes.Delete(ctx, cliente.ID)
	if got := apiMessage(t, err); got != "No se puede eliminar un cliente con ventas registradas" {
		t.Fatalf("message = %q", got)
	}

	historial, err := client.Clientes.Historial(ctx, cliente.ID)
	if err != nil {
		t.Fatalf("historial: %v", err)
	}
	if historial.Estadisticas.TotalGastado != 16000 || historial.Estadisticas.CantidadCompras != 1 {
		t.Fatalf("estadisticas = %+v", historial.Estadisticas)
	}
	if historial.Estadisticas.TicketPromedio != 16000 {
		t.Fatalf("ticket promedio = %v", historial.Estadisticas.TicketPromedio)
	}

	anulada, err := client.Ventas.Anular(ctx, venta.ID)
	if err != nil {
		t.Fatalf("anular: %v", err)
	}
	if anulada.Estado != domain.EstadoAnulada {
		t.Fatalf("anulada = %+v", anulada)
	}

	_, err = client.Ventas.Anular(ctx, venta.ID)
	if got := apiMessage(t, err); got != "La venta ya está anulada" {
		t.Fatalf("message = %q", got)
	}

	// Voided sales stay listed but leave the aggregates.
	historial, err = client.Clientes.Historial(ctx, cliente.ID)
	if err != nil {
		t.Fatalf("historial: %v", err)
	}
	if len(historial.Ventas) != 1 {
		t.Fatalf("historial ventas = %d", len(historial.Ventas))
	}
	if historial.Estadisticas.CantidadCompras != 0 || historial.Estadisticas.TotalGastado != 0 {
		t.Fatalf("estadisticas after anular = %+v", historial.Estadisticas)
	}
}

func TestVentaValidation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	cliente, err := client.Clientes.Create(ctx, domain.CreateClienteInput{Nombre: "Eva", Telefono: "1"})
	if err != nil {
		t.Fatalf("create cliente: %v", err)
	}
	metodos, _ := client.MetodosPago.List(ctx)

	casos := []struct {
		nombre string
		input  domain.CreateVentaInput
		want   string
	}{
		{
			nombre: "sin cliente",
			input:  domain.CreateVentaInput{MetodoPagoID: metodos[0].ID},
			want:   "El cliente es requerido",
		},
		{
			nombre: "sin items",
			input: domain.CreateVentaInput{
				ClienteID: cliente.ID, MetodoPagoID: metodos[0].ID, DireccionEntrega: "x",
			},
			want: "La venta debe tener al menos un item",
		},
		{
			nombre: "sin direccion",
			input: domain.CreateVentaInput{
				ClienteID: cliente.ID, MetodoPagoID: metodos[0].ID,
				Items: []domain.CreateVentaItem{{ProductoID: 99, Cantidad: 1, PrecioUnitario: 10}},
			},
			want: "La dirección de entrega es requerida",
		},
		{
			nombre: "producto inexistente",
			input: domain.CreateVentaInput{
				ClienteID: cliente.ID, MetodoPagoID: metodos[0].ID, DireccionEntrega: "x",
				Items: []domain.CreateVentaItem{{ProductoID: 99, Cantidad: 1, PrecioUnitario: 10}},
			},
			want: "Producto no encontrado",
		},
	}
	for _, caso := range casos {
		_, err := client.Ventas.Create(ctx, caso.input)
		if got := apiMessage(t, err); got != caso.want {
			t.Errorf("%s: message = %q, want %q", caso.nombre, got, caso.want)
		}
	}
}

func TestProductoReceta(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	harina, err := client.Ingredientes.Create(ctx, domain.CreateIngredienteInput{
		Nombre: "Harina", CostoUnitario: 50, UnidadMedida: "kg",
	})
	if err != nil {
		t.Fatalf("create ingrediente: %v", err)
	}
	queso, err := client.Ingredientes.Create(ctx, domain.CreateIngredienteInput{
		Nombre: "Queso", CostoUnitario: 300, UnidadMedida: "kg",
	})
	if err != nil {
		t.Fatalf("create ingrediente: %v", err)
	}

	producto, err := client.Productos.Create(ctx, domain.CreateProductoInput{
		Nombre:     "Pizza Muzzarella",
		PrecioBase: 1000,
		Ingredientes: []domain.IngredienteAsignacion{
			{IngredienteID: harina.ID, Cantidad: 1},
			{IngredienteID: queso.ID, Cantidad: 2},
		},
	})
	if err != nil {
		t.Fatalf("create producto: %v", err)
	}
	if len(producto.Ingredientes) != 2 {
		t.Fatalf("receta = %+v", producto.Ingredientes)
	}

	costo, err := client.Productos.Costo(ctx, producto.ID)
	if err != nil {
		t.Fatalf("costo: %v", err)
	}
	// 1×50 + 2×300 = 650 against a 1000 base price.
	if costo.CostoEstimado != 650 {
		t.Fatalf("costo estimado = %v", costo.CostoEstimado)
	}
	if costo.MargenGanancia != 350 || costo.PorcentajeMargen != 35 {
		t.Fatalf("margen = %v (%v%%)", costo.MargenGanancia, costo.PorcentajeMargen)
	}

	// An ingredient in a recipe cannot be removed.
	if err := client.Ingredientes.Delete(ctx, queso.ID); err == nil {
		t.Fatal("delete of used ingredient must fail")
	}

	// Reassign the recipe to a single ingredient.
	actualizado, err := client.Productos.AssignIngredientes(ctx, producto.ID, []domain.IngredienteAsignacion{
		{IngredienteID: harina.ID, Cantidad: 3},
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(actualizado.Ingredientes) != 1 || actualizado.Ingredientes[0].Cantidad != 3 {
		t.Fatalf("receta = %+v", actualizado.Ingredientes)
	}
}

func TestMetodoPagoDuplicado(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.MetodosPago.Create(ctx, domain.CreateMetodoPagoInput{Nombre: "Efectivo"})
	if got := apiMessage(t, err); got != "Ya existe un método de pago con ese nombre" {
		t.Fatalf("message = %q", got)
	}
}

func TestDashboard(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	cliente, _ := client.Clientes.Create(ctx, domain.CreateClienteInput{Nombre: "Ana", Telefono: "5"})
	metodos, _ := client.MetodosPago.List(ctx)
	producto, _ := client.Productos.Create(ctx, domain.CreateProductoInput{Nombre: "Pizza", PrecioBase: 8000})

	for i := 0; i < 2; i++ {
		_, err := client.Ventas.Create(ctx, domain.CreateVentaInput{
			ClienteID:        cliente.ID,
			MetodoPagoID:     metodos[0].ID,
			DireccionEntrega: "Calle 1",
			Items: []domain.CreateVentaItem{
				{ProductoID: producto.ID, Cantidad: 1, PrecioUnitario: 8000},
			},
		})
		if err != nil {
			t.Fatalf("create venta: %v", err)
		}
	}

	stats, err := client.Dashboard.Estadisticas(ctx, "", "")
	if err != nil {
		t.Fatalf("estadisticas: %v", err)
	}
	if stats.Resumen.VentasHoy != 16000 || stats.Resumen.CantidadVentasHoy != 2 {
		t.Fatalf("resumen hoy = %+v", stats.Resumen)
	}
	if stats.Resumen.TotalClientes != 1 || stats.Resumen.PromedioVenta != 8000 {
		t.Fatalf("resumen = %+v", stats.Resumen)
	}
	if len(stats.ProductosMasVendidos) != 1 || stats.ProductosMasVendidos[0].CantidadVendida != 2 {
		t.Fatalf("productos ranking = %+v", stats.ProductosMasVendidos)
	}
	if len(stats.VentasPorMetodoPago) != 1 || stats.VentasPorMetodoPago[0].TotalGenerado != 16000 {
		t.Fatalf("metodos ranking = %+v", stats.VentasPorMetodoPago)
	}

	dia, err := client.Dashboard.VentasDelDia(ctx)
	if err != nil {
		t.Fatalf("ventas del dia: %v", err)
	}
	if dia.CantidadVentas != 2 || dia.TotalDelDia != 16000 {
		t.Fatalf("dia = %+v", dia)
	}

	porMes, err := client.Dashboard.VentasPorMes(ctx, 6)
	if err != nil {
		t.Fatalf("ventas por mes: %v", err)
	}
	if len(porMes) != 6 {
		t.Fatalf("meses = %d, want 6", len(porMes))
	}
	ultimo := porMes[len(porMes)-1]
	if ultimo.CantidadVentas != 2 || ultimo.MontoTotal != 16000 {
		t.Fatalf("mes actual = %+v", ultimo)
	}
}
