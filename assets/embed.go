// Package assets embeds the static data tables shipped with the server:
// the planet catalog, the explanation dialog copy and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed planets.yaml explain.yaml sql/*.sql
var FS embed.FS

func CatalogYAML() ([]byte, error) {
	return FS.ReadFile("planets.yaml")
}

func ExplainYAML() ([]byte, error) {
	return FS.ReadFile("explain.yaml")
}

// Migrations returns the sql/ directory rooted at its own top level,
// so entries are named "001_rounds.sql" and so on.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
