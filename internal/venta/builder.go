// Package venta implements the order-building workflow: a cart of line
// items plus order metadata, validated and submitted as one sale.
package venta

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
)

// Validation messages, surfaced one at a time in declaration order.
const (
	MsgClienteRequerido    = "Debe seleccionar un cliente"
	MsgMetodoPagoRequerido = "Debe seleccionar un método de pago"
	MsgItemsRequeridos     = "Debe agregar al menos un producto"
	MsgDireccionRequerida  = "Debe especificar una dirección de entrega"
)

// ValidationError is a client-side precondition failure. No request was
// made; resubmitting after fixing the field retries with the same cart.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LineItem is one cart entry, referencing either a product or an
// ingredient used as an ad-hoc extra charge. Key is a synthetic identifier
// assigned at insertion; removal stays positional.
type LineItem struct {
	Key            string
	ProductoID     int64
	IngredienteID  int64
	Nombre         string
	Cantidad       int64
	PrecioUnitario float64
}

// Subtotal is cantidad × precio unitario.
func (it LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(it.PrecioUnitario).Mul(decimal.NewFromInt(it.Cantidad))
}

// Draft is the line item currently being composed.
type Draft struct {
	ProductoID     int64
	IngredienteID  int64
	Nombre         string
	Cantidad       int64
	PrecioUnitario float64
}

func emptyDraft() Draft {
	return Draft{Cantidad: 1}
}

// Builder assembles one sale. It is a single-session form: all methods are
// meant to be called from one goroutine, the way the original screen ran
// on the UI thread. Failures never escape as panics; validation problems
// land in Err and submission errors in the ventas store.
type Builder struct {
	ventas *store.Ventas

	clienteID        int64
	metodoPagoID     int64
	metodoElegido    bool
	direccionEntrega string
	notas            string
	items            []LineItem
	draft            Draft
	validationErr    string
}

func NewBuilder(ventas *store.Ventas) *Builder {
	return &Builder{ventas: ventas, draft: emptyDraft()}
}

// SelectCliente picks the client and auto-fills the delivery address from
// the client record. The address stays editable afterwards.
func (b *Builder) SelectCliente(c domain.Cliente) {
	b.clienteID = c.ID
	b.direccionEntrega = c.Direccion
}

// SelectMetodoPago records an explicit payment method choice. Once made,
// the transfer default never overrides it.
func (b *Builder) SelectMetodoPago(id int64) {
	b.metodoPagoID = id
	b.metodoElegido = true
}

// ApplyDefaultMetodoPago derives the initial payment method from the
// fetched list: the first method whose name contains "transferencia",
// case-insensitively. It does nothing once anything is selected.
func (b *Builder) ApplyDefaultMetodoPago(metodos []domain.MetodoPago) {
	if b.metodoElegido || b.metodoPagoID != 0 {
		return
	}
	for _, m := range metodos {
		if strings.Contains(strings.ToLower(m.Nombre), "transferencia") {
			b.metodoPagoID = m.ID
			return
		}
	}
}

// SelectProducto starts a draft line for a product at its base price.
func (b *Builder) SelectProducto(p domain.Producto) {
	b.draft = Draft{
		ProductoID:     p.ID,
		Nombre:         p.Nombre,
		Cantidad:       1,
		PrecioUnitario: p.PrecioBase,
	}
}

// SelectIngrediente starts a draft line for an ingredient charged as an
// extra, priced at its unit cost.
func (b *Builder) SelectIngrediente(ing domain.Ingrediente) {
	b.draft = Draft{
		IngredienteID:  ing.ID,
		Nombre:         ing.Nombre,
		Cantidad:       1,
		PrecioUnitario: ing.CostoUnitario,
	}
}

func (b *Builder) SetCantidad(cantidad int64) {
	b.draft.Cantidad = cantidad
}

func (b *Builder) SetPrecioUnitario(precio float64) {
	b.draft.PrecioUnitario = precio
}

func (b *Builder) SetDireccionEntrega(direccion string) {
	b.direccionEntrega = direccion
}

func (b *Builder) SetNotas(notas string) {
	b.notas = notas
}

// AddItem appends the draft to the cart. It is a no-op unless a source is
// selected and the quantity is positive. On success the draft resets.
func (b *Builder) AddItem() bool {
	if b.draft.ProductoID == 0 && b.draft.IngredienteID == 0 {
		return false
	}
	if b.draft.Cantidad <= 0 {
		return false
	}
	b.items = append(b.items, LineItem{
		Key:            uuid.NewString(),
		ProductoID:     b.draft.ProductoID,
		IngredienteID:  b.draft.IngredienteID,
		Nombre:         b.draft.Nombre,
		Cantidad:       b.draft.Cantidad,
		PrecioUnitario: b.draft.PrecioUnitario,
	})
	b.draft = emptyDraft()
	return true
}

// RemoveItem deletes the cart entry at index, preserving the relative
// order of the rest. Out-of-range indices are a no-op.
func (b *Builder) RemoveItem(index int) bool {
	if index < 0 || index >= len(b.items) {
		return false
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return true
}

// Total recomputes the cart total on every call: Σ cantidad × precio.
func (b *Builder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// validate returns the first failing precondition's message, or "".
func (b *Builder) validate() string {
	if b.clienteID == 0 {
		return MsgClienteRequerido
	}
	if b.metodoPagoID == 0 {
		return MsgMetodoPagoRequerido
	}
	if len(b.items) == 0 {
		return MsgItemsRequeridos
	}
	if strings.TrimSpace(b.direccionEntrega) == "" {
		return MsgDireccionRequerida
	}
	return ""
}

// Input materializes the submission payload from the current form state.
func (b *Builder) Input() domain.CreateVentaInput {
	items := make([]domain.CreateVentaItem, len(b.items))
	for i, it := range b.items {
		items[i] = domain.CreateVentaItem{
			ProductoID:     it.ProductoID,
			IngredienteID:  it.IngredienteID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		}
	}
	return domain.CreateVentaInput{
		ClienteID:        b.clienteID,
		MetodoPagoID:     b.metodoPagoID,
		DireccionEntrega: b.direccionEntrega,
		Notas:            b.notas,
		Items:            items,
	}
}

// Submit validates (client → payment method → items → address, first
// failure only) and creates the sale. On any failure the form state stays
// intact so the same submission can be retried.
func (b *Builder) Submit(ctx context.Context) (*domain.Venta, error) {
	b.validationErr = ""
	if msg := b.validate(); msg != "" {
		b.validationErr = msg
		return nil, &ValidationError{Message: msg}
	}
	created, err := b.ventas.Create(ctx, b.Input())
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Accessors for rendering.

func (b *Builder) ClienteID() int64           { return b.clienteID }
func (b *Builder) MetodoPagoID() int64        { return b.metodoPagoID }
func (b *Builder) DireccionEntrega() string   { return b.direccionEntrega }
func (b *Builder) Notas() string              { return b.notas }
func (b *Builder) Draft() Draft               { return b.draft }
func (b *Builder) Err() string                { return b.validationErr }

// Items returns a copy of the cart in insertion order.
func (b *Builder) Items() []LineItem {
	return append([]LineItem(nil), b.items...)
}
