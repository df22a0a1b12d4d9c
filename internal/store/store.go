// Package store holds the per-entity caches the terminal pages read from.
// Each store owns its own state slice: a list, its pagination, a loading
// flag and a display-ready error message. Mutations reconcile the cached
// list with a fixed policy per entity: Clientes refetches (its purchase
// count is server-computed), everything else patches locally.
package store

// displayError picks the message shown to the user: the error's own text
// when it has one, otherwise the entity-specific fallback.
func displayError(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
