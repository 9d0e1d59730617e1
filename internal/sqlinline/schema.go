package sqlinline

import _ "embed"

// Schema creates every table the service reads or writes. Statements are idempotent.
//
//go:embed schema.sql
var Schema string
