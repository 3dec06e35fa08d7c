// migrations содержит SQL-схему feed-сервиса.
package migrations

import "embed"

// FS — встроенные up/down миграции (N_name.up.sql / N_name.down.sql).
//
//go:embed *.sql
var FS embed.FS
