package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
)

func (a *App) runMetodosPago(ctx context.Context, args []string) error {
	metodos := store.NewMetodosPago(a.client.MetodosPago)
	if len(args) == 0 {
		args = []string{"listar"}
	}
	switch args[0] {
	case "listar":
		if err := metodos.Fetch(ctx); err != nil {
			return fmt.Errorf("%s", metodos.Err())
		}
		a.renderMetodosPago(metodos.MetodosPago())
		return nil

	case "crear":
		fs := flag.NewFlagSet("metodos-pago crear", flag.ContinueOnError)
		nombre := fs.String("nombre", "", "nombre (requerido)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		created, err := metodos.Create(ctx, domain.CreateMetodoPagoInput{Nombre: *nombre})
		if err != nil {
			return fmt.Errorf("%s", metodos.Err())
		}
		a.printf("Método de pago creado: #%d %s\n", created.ID, created.Nombre)
		return nil

	case "editar":
		fs := flag.NewFlagSet("metodos-pago editar", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del método (requerido)")
		nombre := fs.String("nombre", "", "nombre")
		activo := fs.String("activo", "", "true o false")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		input := domain.UpdateMetodoPagoInput{Nombre: *nombre}
		if *activo != "" {
			parsed, err := strconv.ParseBool(*activo)
			if err != nil {
				return fmt.Errorf("-activo debe ser true o false")
			}
			input.Activo = &parsed
		}
		updated, err := metodos.Update(ctx, *id, input)
		if err != nil {
			return fmt.Errorf("%s", metodos.Err())
		}
		a.printf("Método de pago actualizado: #%d %s\n", updated.ID, updated.Nombre)
		return nil

	case "eliminar":
		id, err := idFlag("metodos-pago eliminar", args[1:], "id del método")
		if err != nil {
			return err
		}
		if err := metodos.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s", metodos.Err())
		}
		a.printf("Método de pago #%d eliminado\n", id)
		return nil

	default:
		return fmt.Errorf("acción desconocida: metodos-pago %s", args[0])
	}
}

func (a *App) renderMetodosPago(metodos []domain.MetodoPago) {
	if len(metodos) == 0 {
		a.printf("Sin métodos de pago\n")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tESTADO")
	for _, m := range metodos {
		fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.Nombre, activoLabel(m.Activo))
	}
	w.Flush()
}
