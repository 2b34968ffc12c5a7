// Package migrations holds the goose SQL migrations embedded into the
// binary so a deploy is schema-complete without external files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
