package devapi

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Seed inserts the default payment methods, ignoring duplicates so it is
// safe to run on every start.
func Seed(db *sqlx.DB) {
	metodos := []string{
		"Efectivo",
		"Transferencia Bancaria",
		"Tarjeta de Débito",
	}
	for _, nombre := range metodos {
		if _, err := db.Exec(`INSERT OR IGNORE INTO metodos_pago (nombre) VALUES (?)`, nombre); err != nil {
			log.Printf("unable to seed metodo de pago %q: %v", nombre, err)
		}
	}
}
