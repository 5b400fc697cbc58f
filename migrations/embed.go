// Package migrations содержит SQL-миграции схемы базы данных.
// Файлы встраиваются в бинарь и применяются утилитой cmd/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
