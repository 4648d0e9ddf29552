// Package cli implements the interactive TinyLink terminal client: a
// read-eval-print loop over the session store and the application
// services, with every protected command gated by the access guard.
package cli
