package migrations

import "embed"

// FS встроенные SQL миграции, применяются через goose при старте сервиса
//
//go:embed *.sql
var FS embed.FS
