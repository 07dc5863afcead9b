package database

import (
	"embed"
	"io/fs"
)

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını binary'ye gömer.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

//go:embed seed.yaml
var embeddedSeed []byte

// Migrations, gömülü migration dosyalarını kök dizin olarak döner.
func Migrations() fs.FS {
	sub, err := fs.Sub(EmbeddedMigrations, "migrations")
	if err != nil {
		// "migrations" derleme zamanında sabit, Sub burada hata veremez.
		panic(err)
	}
	return sub
}
