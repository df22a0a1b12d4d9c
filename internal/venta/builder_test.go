package venta

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
)

func newBuilder() *Builder {
	return NewBuilder(store.NewVentas(api.New("http://localhost:0").Ventas))
}

func producto(id int64, nombre string, precio float64) domain.Producto {
	return domain.Producto{ID: id, Nombre: nombre, PrecioBase: precio, Activo: true}
}

func TestTotalRecomputedAfterRemoval(t *testing.T) {
	b := newBuilder()

	b.SelectProducto(producto(1, "Pizza Muzzarella", 10000))
	b.SetCantidad(2)
	b.AddItem()
	b.SelectProducto(producto(2, "Pizza Napolitana", 5000))
	b.AddItem()

	if got := b.Total().InexactFloat64(); got != 25000 {
		t.Fatalf("total = %v, want 25000", got)
	}

	if !b.RemoveItem(0) {
		t.Fatal("RemoveItem(0) failed")
	}
	if got := b.Total().InexactFloat64(); got != 5000 {
		t.Fatalf("total after removal = %v, want 5000", got)
	}
}

func TestTotalOrderIndependent(t *testing.T) {
	lineas := []struct {
		precio   float64
		cantidad int64
	}{{1200.50, 3}, {850.25, 1}, {99.99, 7}}

	forward := newBuilder()
	for _, l := range lineas {
		forward.SelectProducto(producto(1, "x", l.precio))
		forward.SetCantidad(l.cantidad)
		forward.AddItem()
	}
	backward := newBuilder()
	for i := len(lineas) - 1; i >= 0; i-- {
		backward.SelectProducto(producto(1, "x", lineas[i].precio))
		backward.SetCantidad(lineas[i].cantidad)
		backward.AddItem()
	}

	if !forward.Total().Equal(backward.Total()) {
		t.Fatalf("totals differ: %s vs %s", forward.Total(), backward.Total())
	}
}

func TestValidationOrder(t *testing.T) {
	ctx := context.Background()

	b := newBuilder()
	_, err := b.Submit(ctx)
	assertValidation(t, err, MsgClienteRequerido)

	b.SelectCliente(domain.Cliente{ID: 5, Nombre: "Ana"})
	_, err = b.Submit(ctx)
	assertValidation(t, err, MsgMetodoPagoRequerido)

	b.SelectMetodoPago(2)
	_, err = b.Submit(ctx)
	assertValidation(t, err, MsgItemsRequeridos)

	b.SelectProducto(producto(1, "Pizza", 8000))
	b.AddItem()
	_, err = b.Submit(ctx)
	assertValidation(t, err, MsgDireccionRequerida)
}

func assertValidation(t *testing.T, err error, want string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Message != want {
		t.Fatalf("message = %q, want %q", verr.Message, want)
	}
}

func TestDefaultMetodoPagoTransferencia(t *testing.T) {
	metodos := []domain.MetodoPago{
		{ID: 1, Nombre: "Efectivo"},
		{ID: 2, Nombre: "Transferencia Bancaria"},
		{ID: 3, Nombre: "Tarjeta de Débito"},
	}

	b := newBuilder()
	b.ApplyDefaultMetodoPago(metodos)
	if b.MetodoPagoID() != 2 {
		t.Fatalf("default metodo = %d, want 2", b.MetodoPagoID())
	}

	// An explicit choice is never overridden by the default.
	b = newBuilder()
	b.SelectMetodoPago(1)
	b.ApplyDefaultMetodoPago(metodos)
	if b.MetodoPagoID() != 1 {
		t.Fatalf("metodo = %d, want explicit 1", b.MetodoPagoID())
	}

	// No transfer-like method: nothing is selected.
	b = newBuilder()
	b.ApplyDefaultMetodoPago(metodos[:1])
	if b.MetodoPagoID() != 0 {
		t.Fatalf("metodo = %d, want 0", b.MetodoPagoID())
	}
}

func TestAddItemRequiresSourceAndQuantity(t *testing.T) {
	b := newBuilder()
	if b.AddItem() {
		t.Fatal("AddItem with no source selected must be a no-op")
	}

	b.SelectProducto(producto(1, "Pizza", 8000))
	b.SetCantidad(0)
	if b.AddItem() {
		t.Fatal("AddItem with zero quantity must be a no-op")
	}
	if len(b.Items()) != 0 {
		t.Fatalf("items = %d, want 0", len(b.Items()))
	}

	b.SetCantidad(3)
	if !b.AddItem() {
		t.Fatal("AddItem with valid draft failed")
	}
	if b.Draft().ProductoID != 0 || b.Draft().Cantidad != 1 {
		t.Fatalf("draft not reset: %+v", b.Draft())
	}
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	b := newBuilder()
	nombres := []string{"a", "b", "c", "d"}
	for i, n := range nombres {
		b.SelectProducto(producto(int64(i+1), n, 100))
		b.AddItem()
	}

	if b.RemoveItem(4) {
		t.Fatal("out of range removal must be a no-op")
	}
	if !b.RemoveItem(1) {
		t.Fatal("RemoveItem(1) failed")
	}

	items := b.Items()
	got := []string{items[0].Nombre, items[1].Nombre, items[2].Nombre}
	want := []string{"a", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items after removal = %v, want %v", got, want)
		}
	}
}

func TestLineItemKeysUnique(t *testing.T) {
	b := newBuilder()
	for i := 0; i < 3; i++ {
		b.SelectProducto(producto(1, "Pizza", 8000))
		b.AddItem()
	}
	seen := map[string]bool{}
	for _, it := range b.Items() {
		if it.Key == "" || seen[it.Key] {
			t.Fatalf("duplicate or empty key %q", it.Key)
		}
		seen[it.Key] = true
	}
}

func TestSelectClienteAutofillsDireccion(t *testing.T) {
	b := newBuilder()
	b.SelectCliente(domain.Cliente{ID: 3, Nombre: "Ana", Direccion: "Calle Falsa 123"})
	if b.DireccionEntrega() != "Calle Falsa 123" {
		t.Fatalf("direccion = %q", b.DireccionEntrega())
	}

	// Still editable afterwards.
	b.SetDireccionEntrega("Otra 456")
	if b.DireccionEntrega() != "Otra 456" {
		t.Fatalf("direccion = %q", b.DireccionEntrega())
	}
}

func TestSubmitSendsPayloadAndKeepsStateOnFailure(t *testing.T) {
	var received domain.CreateVentaInput
	fallar := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fallar {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status": "fail", "message": "Cliente no encontrado"}`))
			return
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status": "success", "data": {"venta": {"id": 42, "total": 16000, "estado": "pendiente"}}}`))
	}))
	defer server.Close()

	ventas := store.NewVentas(api.New(server.URL).Ventas)
	b := NewBuilder(ventas)
	b.SelectCliente(domain.Cliente{ID: 5, Direccion: "Calle 1"})
	b.SelectMetodoPago(2)
	b.SelectProducto(producto(9, "Pizza", 8000))
	b.SetCantidad(2)
	b.AddItem()
	b.SetNotas("sin aceitunas")

	// Server rejects: the form must survive for a retry.
	if _, err := b.Submit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	if len(b.Items()) != 1 || b.ClienteID() != 5 {
		t.Fatal("form state lost after failed submit")
	}

	fallar = false
	created, err := b.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("created = %+v", created)
	}
	if received.ClienteID != 5 || received.MetodoPagoID != 2 || received.Notas != "sin aceitunas" {
		t.Fatalf("payload = %+v", received)
	}
	if len(received.Items) != 1 || received.Items[0].ProductoID != 9 || received.Items[0].Cantidad != 2 {
		t.Fatalf("items = %+v", received.Items)
	}
}
