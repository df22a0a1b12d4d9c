package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
)

func (a *App) runIngredientes(ctx context.Context, args []string) error {
	ingredientes := store.NewIngredientes(a.client.Ingredientes)
	if len(args) == 0 {
		args = []string{"listar"}
	}
	switch args[0] {
	case "listar":
		fs := flag.NewFlagSet("ingredientes listar", flag.ContinueOnError)
		page := fs.Int("page", 1, "página")
		limit := fs.Int("limit", 10, "resultados por página")
		orderBy := fs.String("orden", "", "nombre o costoUnitario")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		params := api.IngredienteListParams{Page: *page, Limit: *limit, OrderBy: *orderBy}
		if err := ingredientes.Fetch(ctx, params); err != nil {
			return fmt.Errorf("%s", ingredientes.Err())
		}
		a.renderIngredientes(ingredientes.Ingredientes())
		a.printPagination(ingredientes.Pagination())
		return nil

	case "crear":
		fs := flag.NewFlagSet("ingredientes crear", flag.ContinueOnError)
		nombre := fs.String("nombre", "", "nombre (requerido)")
		costo := fs.Float64("costo", 0, "costo unitario (requerido)")
		stock := fs.Float64("stock", 0, "stock disponible")
		unidad := fs.String("unidad", "", "unidad de medida")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		created, err := ingredientes.Create(ctx, domain.CreateIngredienteInput{
			Nombre:        *nombre,
			CostoUnitario: *costo,
			Stock:         *stock,
			UnidadMedida:  *unidad,
		})
		if err != nil {
			return fmt.Errorf("%s", ingredientes.Err())
		}
		a.printf("Ingrediente creado: #%d %s\n", created.ID, created.Nombre)
		return nil

	case "editar":
		fs := flag.NewFlagSet("ingredientes editar", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del ingrediente (requerido)")
		nombre := fs.String("nombre", "", "nombre")
		costo := fs.Float64("costo", 0, "costo unitario")
		stock := fs.Float64("stock", 0, "stock disponible")
		unidad := fs.String("unidad", "", "unidad de medida")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		updated, err := ingredientes.Update(ctx, *id, domain.UpdateIngredienteInput{
			Nombre:        *nombre,
			CostoUnitario: *costo,
			Stock:         *stock,
			UnidadMedida:  *unidad,
		})
		if err != nil {
			return fmt.Errorf("%s", ingredientes.Err())
		}
		a.printf("Ingrediente actualizado: #%d %s\n", updated.ID, updated.Nombre)
		return nil

	case "eliminar":
		id, err := idFlag("ingredientes eliminar", args[1:], "id del ingrediente")
		if err != nil {
			return err
		}
		if err := ingredientes.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s", ingredientes.Err())
		}
		a.printf("Ingrediente #%d eliminado\n", id)
		return nil

	default:
		return fmt.Errorf("acción desconocida: ingredientes %s", args[0])
	}
}

func (a *App) renderIngredientes(ingredientes []domain.Ingrediente) {
	if len(ingredientes) == 0 {
		a.printf("Sin ingredientes\n")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tCOSTO\tSTOCK\tUNIDAD")
	for _, ing := range ingredientes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\n", ing.ID, ing.Nombre, money(ing.CostoUnitario), ing.Stock, ing.UnidadMedida)
	}
	w.Flush()
}
