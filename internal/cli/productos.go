package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
	"github.com/josei-decelis/sistema-ventas-cli/internal/store"
)

func (a *App) runProductos(ctx context.Context, args []string) error {
	productos := store.NewProductos(a.client.Productos)
	if len(args) == 0 {
		args = []string{"listar"}
	}
	switch args[0] {
	case "listar":
		fs := flag.NewFlagSet("productos listar", flag.ContinueOnError)
		page := fs.Int("page", 1, "página")
		limit := fs.Int("limit", 10, "resultados por página")
		soloActivos := fs.Bool("activos", false, "solo productos activos")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		params := api.ProductoListParams{Page: *page, Limit: *limit}
		if *soloActivos {
			activo := true
			params.Activo = &activo
		}
		if err := productos.Fetch(ctx, params); err != nil {
			return fmt.Errorf("%s", productos.Err())
		}
		a.renderProductos(productos.Productos())
		a.printPagination(productos.Pagination())
		return nil

	case "ver":
		id, err := idFlag("productos ver", args[1:], "id del producto")
		if err != nil {
			return err
		}
		producto, err := a.client.Productos.Get(ctx, id)
		if err != nil {
			return err
		}
		a.printf("#%d %s (%s) %s\n", producto.ID, producto.Nombre, activoLabel(producto.Activo), money(producto.PrecioBase))
		if producto.Descripcion != "" {
			a.printf("%s\n", producto.Descripcion)
		}
		if len(producto.Ingredientes) > 0 {
			w := a.table()
			fmt.Fprintln(w, "INGREDIENTE\tCANTIDAD\tUNIDAD")
			for _, pi := range producto.Ingredientes {
				nombre := strconv.FormatInt(pi.IngredienteID, 10)
				if pi.Ingrediente != nil {
					nombre = pi.Ingrediente.Nombre
				}
				fmt.Fprintf(w, "%s\t%v\t%s\n", nombre, pi.Cantidad, pi.UnidadMedida)
			}
			w.Flush()
		}
		return nil

	case "crear":
		fs := flag.NewFlagSet("productos crear", flag.ContinueOnError)
		nombre := fs.String("nombre", "", "nombre (requerido)")
		descripcion := fs.String("descripcion", "", "descripción")
		precio := fs.Float64("precio", 0, "precio base (requerido)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		created, err := productos.Create(ctx, domain.CreateProductoInput{
			Nombre:      *nombre,
			Descripcion: *descripcion,
			PrecioBase:  *precio,
		})
		if err != nil {
			return fmt.Errorf("%s", productos.Err())
		}
		a.printf("Producto creado: #%d %s %s\n", created.ID, created.Nombre, money(created.PrecioBase))
		return nil

	case "editar":
		fs := flag.NewFlagSet("productos editar", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del producto (requerido)")
		nombre := fs.String("nombre", "", "nombre")
		descripcion := fs.String("descripcion", "", "descripción")
		precio := fs.Float64("precio", 0, "precio base")
		activo := fs.String("activo", "", "true o false")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		input := domain.UpdateProductoInput{
			Nombre:      *nombre,
			Descripcion: *descripcion,
			PrecioBase:  *precio,
		}
		if *activo != "" {
			parsed, err := strconv.ParseBool(*activo)
			if err != nil {
				return fmt.Errorf("-activo debe ser true o false")
			}
			input.Activo = &parsed
		}
		updated, err := productos.Update(ctx, *id, input)
		if err != nil {
			return fmt.Errorf("%s", productos.Err())
		}
		a.printf("Producto actualizado: #%d %s\n", updated.ID, updated.Nombre)
		return nil

	case "eliminar":
		id, err := idFlag("productos eliminar", args[1:], "id del producto")
		if err != nil {
			return err
		}
		if err := productos.Delete(ctx, id); err != nil {
			return fmt.Errorf("%s", productos.Err())
		}
		a.printf("Producto #%d eliminado\n", id)
		return nil

	case "costo":
		id, err := idFlag("productos costo", args[1:], "id del producto")
		if err != nil {
			return err
		}
		costo, err := a.client.Productos.Costo(ctx, id)
		if err != nil {
			return err
		}
		a.printf("%s: precio %s, costo estimado %s, margen %s (%.1f%%)\n",
			costo.Producto.Nombre,
			money(costo.Producto.PrecioBase),
			money(costo.CostoEstimado),
			money(costo.MargenGanancia),
			costo.PorcentajeMargen)
		if len(costo.Ingredientes) > 0 {
			w := a.table()
			fmt.Fprintln(w, "INGREDIENTE\tCANTIDAD\tCOSTO UNIT.\tCOSTO")
			for _, ci := range costo.Ingredientes {
				fmt.Fprintf(w, "%s\t%v\t%s\t%s\n", ci.Nombre, ci.Cantidad, money(ci.CostoUnitario), money(ci.CostoTotal))
			}
			w.Flush()
		}
		return nil

	case "receta":
		fs := flag.NewFlagSet("productos receta", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id del producto (requerido)")
		receta := fs.String("ingredientes", "", "lista ingredienteId:cantidad[:unidad] separada por comas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("el flag -id es requerido")
		}
		asignaciones, err := parseReceta(*receta)
		if err != nil {
			return err
		}
		updated, err := a.client.Productos.AssignIngredientes(ctx, *id, asignaciones)
		if err != nil {
			return err
		}
		a.printf("Receta actualizada: %s con %d ingredientes\n", updated.Nombre, len(updated.Ingredientes))
		return nil

	default:
		return fmt.Errorf("acción desconocida: productos %s", args[0])
	}
}

// parseReceta parses "3:2.5:kg,7:1" into ingredient assignments.
func parseReceta(raw string) ([]domain.IngredienteAsignacion, error) {
	var asignaciones []domain.IngredienteAsignacion
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("entrada de receta inválida: %q", entry)
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("id de ingrediente inválido en %q", entry)
		}
		cantidad, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || cantidad <= 0 {
			return nil, fmt.Errorf("cantidad inválida en %q", entry)
		}
		asignacion := domain.IngredienteAsignacion{IngredienteID: id, Cantidad: cantidad}
		if len(parts) == 3 {
			asignacion.UnidadMedida = parts[2]
		}
		asignaciones = append(asignaciones, asignacion)
	}
	return asignaciones, nil
}

func idFlag(name string, args []string, help string) (int64, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.Int64("id", 0, help+" (requerido)")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *id == 0 {
		return 0, fmt.Errorf("el flag -id es requerido")
	}
	return *id, nil
}

func (a *App) renderProductos(productos []domain.Producto) {
	if len(productos) == 0 {
		a.printf("Sin productos\n")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tNOMBRE\tPRECIO\tESTADO")
	for _, p := range productos {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Nombre, money(p.PrecioBase), activoLabel(p.Activo))
	}
	w.Flush()
}
