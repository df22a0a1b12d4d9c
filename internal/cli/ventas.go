package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
	"github.com/josei-decelis/sistema-ventas-cli/internal/venta"
)

// fetchAllLimit is large enough that the selection lists of the interactive
// flow see the whole catalog in one page.
const fetchAllLimit = 1000

func (a *App) runVentas(ctx context.Context, args []string) error {
	ventas := store.NewVentas(a.client.Ventas)
	if len(args) == 0 {
		args = []string{"listar"}
	}
	switch args[0] {
	case "listar":
		fs := flag.NewFlagSet("ventas listar", flag.ContinueOnError)
		page := fs.Int("page", 1, "página")
		limit := fs.Int("limit", 10, "resultados por página")
		estado := fs.String("estado", "", "pendiente, completada, entregada o anulada")
		clienteID := fs.Int64("cliente", 0, "filtrar por cliente")
		fechaInicio := fs.String("desde", "", "fecha inicial YYYY-MM-DD")
		fechaFin := fs.String("hasta", "", "fecha final YYYY-MM-DD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		params := api.VentaListParams{
			Page:        *page,
			Limit:       *limit,
			Estado:      *estado,
			ClienteID:   *clienteID,
			FechaInicio: *fechaInicio,
			FechaFin:    *fechaFin,
		}
		if err := ventas.Fetch(ctx, params); err != nil {
			return fmt.Errorf("%s", ventas.Err())
		}
		a.renderVentas(ventas.Ventas())
		a.printPagination(ventas.Pagination())
		return nil

	case "ver":
		id, err := idFlag("ventas ver", args[1:], "id de la venta")
		if err != nil {
			return err
		}
		v, err := a.client.Ventas.Get(ctx, id)
		if err != nil {
			return err
		}
		a.renderVentaDetalle(v)
		return nil

	case "anular":
		id, err := idFlag("ventas anular", args[1:], "id de la venta")
		if err != nil {
			return err
		}
		if err := ventas.Anular(ctx, id); err != nil {
			return fmt.Errorf("%s", ventas.Err())
		}
		a.printf("Venta #%d anulada\n", id)
		return nil

	case "crear":
		return a.crearVenta(ctx, ventas)

	default:
		return fmt.Errorf("acción desconocida: ventas %s", args[0])
	}
}

// crearVenta walks the operator through the order form: client, payment
// method, cart, delivery address, confirmation.
func (a *App) crearVenta(ctx context.Context, ventas *store.Ventas) error {
	clientes, _, err := a.client.Clientes.List(ctx, api.ListParams{Page: 1, Limit: fetchAllLimit})
	if err != nil {
		return err
	}
	metodos, err := a.client.MetodosPago.List(ctx)
	if err != nil {
		return err
	}
	activo := true
	productos, _, err := a.client.Productos.List(ctx, api.ProductoListParams{Page: 1, Limit: fetchAllLimit, Activo: &activo})
	if err != nil {
		return err
	}
	ingredientes, _, err := a.client.Ingredientes.List(ctx, api.IngredienteListParams{Page: 1, Limit: fetchAllLimit})
	if err != nil {
		return err
	}

	b := venta.NewBuilder(ventas)
	b.ApplyDefaultMetodoPago(metodos)

	a.renderClientes(clientes)
	for b.ClienteID() == 0 {
		id := a.promptInt("Cliente (id)", 0)
		c := buscarCliente(clientes, id)
		if c == nil {
			a.printf("Cliente no encontrado\n")
			continue
		}
		b.SelectCliente(*c)
	}

	a.renderMetodosPago(metodos)
	etiqueta := "Método de pago (id)"
	if b.MetodoPagoID() != 0 {
		etiqueta = fmt.Sprintf("Método de pago (id) [%d]", b.MetodoPagoID())
	}
	if raw := a.prompt(etiqueta, ""); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			b.SelectMetodoPago(id)
		}
	}

	a.renderProductos(productos)
	a.printf("Agregue items: p <id> producto, i <id> ingrediente extra, quitar <n>, lista, fin\n")
	for {
		linea := a.prompt(">", "")
		campos := strings.Fields(linea)
		if len(campos) == 0 {
			continue
		}
		if campos[0] == "fin" {
			break
		}
		if campos[0] == "lista" {
			a.renderCarrito(b)
			continue
		}
		if campos[0] != "p" && campos[0] != "i" && campos[0] != "quitar" {
			a.printf("Comando desconocido\n")
			continue
		}
		if len(campos) < 2 {
			a.printf("Falta el id\n")
			continue
		}
		n, err := strconv.ParseInt(campos[1], 10, 64)
		if err != nil {
			a.printf("Id inválido\n")
			continue
		}
		switch campos[0] {
		case "p":
			p := buscarProducto(productos, n)
			if p == nil {
				a.printf("Producto no encontrado\n")
				continue
			}
			b.SelectProducto(*p)
		case "i":
			ing := buscarIngrediente(ingredientes, n)
			if ing == nil {
				a.printf("Ingrediente no encontrado\n")
				continue
			}
			b.SelectIngrediente(*ing)
		case "quitar":
			if !b.RemoveItem(int(n) - 1) {
				a.printf("No hay item %d\n", n)
			}
			continue
		}
		b.SetCantidad(a.promptInt("Cantidad", b.Draft().Cantidad))
		b.SetPrecioUnitario(a.promptFloat("Precio unitario", b.Draft().PrecioUnitario))
		if !b.AddItem() {
			a.printf("Item descartado: cantidad inválida\n")
			continue
		}
		a.printf("Total parcial: $%s\n", b.Total().StringFixed(2))
	}

	b.SetDireccionEntrega(a.prompt("Dirección de entrega", b.DireccionEntrega()))
	b.SetNotas(a.prompt("Notas", ""))

	a.renderCarrito(b)
	if !a.confirm("Confirmar venta") {
		a.printf("Venta cancelada\n")
		return nil
	}

	created, err := b.Submit(ctx)
	if err != nil {
		var verr *venta.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s", verr.Message)
		}
		return fmt.Errorf("%s", ventas.Err())
	}
	a.printf("Venta registrada: #%d por %s\n", created.ID, money(created.Total))
	return nil
}

func (a *App) renderCarrito(b *venta.Builder) {
	items := b.Items()
	if len(items) == 0 {
		a.printf("Carrito vacío\n")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "#\tITEM\tCANTIDAD\tPRECIO\tSUBTOTAL")
	for i, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t$%s\n", i+1, it.Nombre, it.Cantidad, money(it.PrecioUnitario), it.Subtotal().StringFixed(2))
	}
	w.Flush()
	a.printf("Total: $%s\n", b.Total().StringFixed(2))
}

func (a *App) renderVentas(ventas []domain.Venta) {
	if len(ventas) == 0 {
		a.printf("Sin ventas\n")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tFECHA\tCLIENTE\tMÉTODO\tTOTAL\tESTADO")
	for _, v := range ventas {
		cliente := strconv.FormatInt(v.ClienteID, 10)
		if v.Cliente != nil {
			cliente = v.Cliente.Nombre
		}
		metodo := strconv.FormatInt(v.MetodoPagoID, 10)
		if v.MetodoPago != nil {
			metodo = v.MetodoPago.Nombre
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.CreatedAt, cliente, metodo, money(v.Total), v.Estado)
	}
	w.Flush()
}

func (a *App) renderVentaDetalle(v *domain.Venta) {
	a.printf("Venta #%d (%s) %s\n", v.ID, v.Estado, money(v.Total))
	if v.Cliente != nil {
		a.printf("Cliente: %s (%s)\n", v.Cliente.Nombre, v.Cliente.Telefono)
	}
	if v.MetodoPago != nil {
		a.printf("Método de pago: %s\n", v.MetodoPago.Nombre)
	}
	a.printf("Entrega: %s\n", v.DireccionEntrega)
	if v.Notas != "" {
		a.printf("Notas: %s\n", v.Notas)
	}
	if len(v.Items) > 0 {
		w := a.table()
		fmt.Fprintln(w, "ITEM\tCANTIDAD\tPRECIO\tSUBTOTAL")
		for _, it := range v.Items {
			nombre := strconv.FormatInt(it.ProductoID, 10)
			if it.Producto != nil {
				nombre = it.Producto.Nombre
			} else if it.IngredienteID != 0 {
				nombre = fmt.Sprintf("extra #%d", it.IngredienteID)
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", nombre, it.Cantidad, money(it.PrecioUnitario), money(it.Subtotal))
		}
		w.Flush()
	}
}

func buscarCliente(clientes []domain.Cliente, id int64) *domain.Cliente {
	for i := range clientes {
		if clientes[i].ID == id {
			return &clientes[i]
		}
	}
	return nil
}

func buscarProducto(productos []domain.Producto, id int64) *domain.Producto {
	for i := range productos {
		if productos[i].ID == id {
			return &productos[i]
		}
	}
	return nil
}

func buscarIngrediente(ingredientes []domain.Ingrediente, id int64) *domain.Ingrediente {
	for i := range ingredientes {
		if ingredientes[i].ID == id {
			return &ingredientes[i]
		}
	}
	return nil
}
