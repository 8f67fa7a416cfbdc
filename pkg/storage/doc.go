// Package storage provides a thin BadgerDB-backed key-value layer with
// JSON-marshaled values, used by all persistent services.
package storage
