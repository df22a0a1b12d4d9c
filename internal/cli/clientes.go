package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
)

func (a *App) runClientes(ctx context.Context, args []string) error {
	clientes := store.NewClientes(a.client.Clientes)
	if len(args) == 0 {
		args = []string{"listar"}
	}
	switch args[0] {
	case "listar":
		fs := flag.NewFlagSet("clientes listar", flag.ContinueOnError)
		page := fs.Int("page", 1, "página")
		limit := fs.Int("limit", 10, "resultados por página")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := clientes.Fetch(ctx, *page, *limit); err != nil {
			return fmt.Errorf("%s", clientes.Err())
		}
		a.renderClientes(clientes.Clientes())
		a.printPagination(clientes.Pagination())
		return nil

	case "buscar":
		fs := flag.NewFlagSet("clientes buscar", flag.ContinueOnError)
		q := fs.String("q", "", "texto a buscar (nombre o teléfono)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := clientes.Search(ctx, *q); err != nil {
			return fmt.Errorf("%s", clientes.Err())
		}
		a.renderClientes(clientes.Clientes())
		return nil

	case "ver":
		fs := flag.NewFlagSet("clientes ver", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del cliente (requerido)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		cliente, err := a.client.Clientes.Get(ctx, *id)
		if err != nil {
			return err
		}
		a.printf("#%d %s (%s)\n", cliente.ID, cliente.Nombre, cliente.Telefono)
		if cliente.Direccion != "" {
			a.printf("Dirección: %s\n", cliente.Direccion)
		}
		if cliente.Notas != "" {
			a.printf("Notas: %s\n", cliente.Notas)
		}
		if cliente.Count != nil {
			a.printf("Ventas registradas: %d\n", cliente.Count.Ventas)
		}
		return nil

	case "crear":
		fs := flag.NewFlagSet("clientes crear", flag.ContinueOnError)
		nombre := fs.String("nombre", "", "nombre (requerido)")
		telefono := fs.String("telefono", "", "teléfono (requerido)")
		direccion := fs.String("direccion", "", "dirección")
		notas := fs.String("notas", "", "notas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		created, err := clientes.Create(ctx, domain.CreateClienteInput{
			Nombre:    *nombre,
			Telefono:  *telefono,
			Direccion: *direccion,
			Notas:     *notas,
		})
		if err != nil {
			return fmt.Errorf("%s", clientes.Err())
		}
		a.printf("Cliente creado: #%d %s\n", created.ID, created.Nombre)
		return nil

	case "editar":
		fs := flag.NewFlagSet("clientes editar", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del cliente (requerido)")
		nombre := fs.String("nombre", "", "nombre")
		telefono := fs.String("telefono", "", "teléfono")
		direccion := fs.String("direccion", "", "dirección")
		notas := fs.String("notas", "", "notas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		updated, err := clientes.Update(ctx, *id, domain.UpdateClienteInput{
			Nombre:    *nombre,
			Telefono:  *telefono,
			Direccion: *direccion,
			Notas:     *notas,
		})
		if err != nil {
			return fmt.Errorf("%s", clientes.Err())
		}
		a.printf("Cliente actualizado: #%d %s\n", updated.ID, updated.Nombre)
		return nil

	case "eliminar":
		fs := flag.NewFlagSet("clientes eliminar", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del cliente (requerido)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		if err := clientes.Delete(ctx, *id); err != nil {
			return fmt.Errorf("%s", clientes.Err())
		}
		a.printf("Cliente #%d eliminado\n", *id)
		return nil

	case "historial":
		fs := flag.NewFlagSet("clientes historial", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del cliente (requerido)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		historial, err := a.client.Clientes.Historial(ctx, *id)
		if err != nil {
			return err
		}
		a.renderHistorial(historial)
		return nil

	default:
		return fmt.Errorf("acción desconocida: clientes %s", args[0])
	}
}

func (a *App) renderClientes(clientes []domain.Cliente) {
	if len(clientes) == 0 {
		a.printf("Sin clientes\n")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tTELÉFONO\tDIRECCIÓN\tVENTAS")
	for _, c := range clientes {
		ventas := 0
		if c.Count != nil {
			ventas = c.Count.Ventas
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", c.ID, c.Nombre, c.Telefono, c.Direccion, ventas)
	}
	w.Flush()
}

func (a *App) renderHistorial(h *domain.ClienteHistorial) {
	a.printf("Cliente: %s (%s)\n", h.Cliente.Nombre, h.Cliente.Telefono)
	a.printf("Total gastado: %s  Compras: %d  Ticket promedio: %s\n",
		money(h.Estadisticas.TotalGastado),
		h.Estadisticas.CantidadCompras,
		money(h.Estadisticas.TicketPromedio))
	a.renderVentas(h.Ventas)
}
