package main

import (
	"errors"
	"flag"
	"fmt"

	"site_cms/internal/storage/migrations"
)

func main() {
	var dsn, migrationsTable, direction string
	var steps int

	flag.StringVar(&dsn, "dsn", "", "postgres connection string")
	flag.StringVar(&migrationsTable, "migrations-table", "", "name of migrations table")
	flag.StringVar(&direction, "direction", "up", "up, down or version")
	flag.IntVar(&steps, "steps", 1, "number of migrations to roll back")
	flag.Parse()

	if dsn == "" {
		panic("dsn is required")
	}

	switch direction {
	case "up":
		if err := migrations.Up(dsn, migrationsTable); err != nil {
			panic(err)
		}
		fmt.Println("migrations applied")
	case "down":
		if err := migrations.Down(dsn, migrationsTable, steps); err != nil {
			panic(err)
		}
		fmt.Printf("rolled back %d migration(s)\n", steps)
	case "version":
		version, dirty, err := migrations.Version(dsn, migrationsTable)
		if err != nil {
			panic(err)
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	default:
		panic(errors.New("unknown direction " + direction))
	}
}
