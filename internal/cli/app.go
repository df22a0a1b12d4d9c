// Package cli implements the terminal frontend: one page per entity,
// rendered from the stores in internal/store.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/josei-decelis/sistema-ventas-cli/domain"
	"github.com/josei-decelis/sistema-ventas-cli/internal/api"
)

// App wires the API client to the subcommand pages.
type App struct {
	client *api.Client
	in     *bufio.Reader
	out    io.Writer
}

func New(client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{client: client, in: bufio.NewReader(in), out: out}
}

const usage = `sistema-ventas

Uso:
  ventas clientes      <listar|buscar|ver|crear|editar|eliminar|historial> [flags]
  ventas productos     <listar|ver|crear|editar|eliminar|costo|receta> [flags]
  ventas ingredientes  <listar|crear|editar|eliminar> [flags]
  ventas metodos-pago  <listar|crear|editar|eliminar> [flags]
  ventas ventas        <listar|ver|crear|anular> [flags]
  ventas dashboard     [flags]
`

// Run dispatches to the page named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	switch args[0] {
	case "clientes":
		return a.runClientes(ctx, args[1:])
	case "productos":
		return a.runProductos(ctx, args[1:])
	case "ingredientes":
		return a.runIngredientes(ctx, args[1:])
	case "metodos-pago":
		return a.runMetodosPago(ctx, args[1:])
	case "ventas":
		return a.runVentas(ctx, args[1:])
	case "dashboard":
		return a.runDashboard(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("comando desconocido: %s", args[0])
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// table returns a tabwriter for aligned listing output. Callers must Flush.
func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func activoLabel(activo bool) string {
	if activo {
		return "activo"
	}
	return "inactivo"
}

func (a *App) printPagination(p domain.Pagination) {
	if p.TotalPages > 1 {
		a.printf("Página %d de %d (%d en total)\n", p.Page, p.TotalPages, p.Total)
	}
}

// prompt reads one trimmed line, returning fallback when the answer is empty.
func (a *App) prompt(label, fallback string) string {
	if fallback != "" {
		a.printf("%s [%s]: ", label, fallback)
	} else {
		a.printf("%s: ", label)
	}
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func (a *App) promptInt(label string, fallback int64) int64 {
	raw := a.prompt(label, strconv.FormatInt(fallback, 10))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.printf("Valor inválido, se usa %d\n", fallback)
		return fallback
	}
	return n
}

func (a *App) promptFloat(label string, fallback float64) float64 {
	raw := a.prompt(label, strconv.FormatFloat(fallback, 'f', -1, 64))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		a.printf("Valor inválido, se usa %v\n", fallback)
		return fallback
	}
	return f
}

func (a *App) confirm(label string) bool {
	answer := strings.ToLower(a.prompt(label+" (s/n)", "n"))
	return answer == "s" || answer == "si" || answer == "sí"
}
