// Command migrate applies the SQL migrations from migrations/ against the
// database configured in config.toml.
//
// Usage:
//
//	migrate -config config.toml up
//	migrate -config config.toml down 1
//	migrate -config config.toml version
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/guelfi/barbershop-booking/internal/config"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration")
	migrationsPath := flag.String("path", "migrations", "path to the migration files")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-config config.toml] [-path migrations] up|down [n]|version")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+*migrationsPath, cfg.Database.URL())
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	switch flag.Arg(0) {
	case "up":
		err = m.Up()

	case "down":
		steps := 1
		if flag.NArg() > 1 {
			steps, err = strconv.Atoi(flag.Arg(1))
			if err != nil {
				fmt.Fprintf(os.Stderr, "migrate: invalid step count %q\n", flag.Arg(1))
				os.Exit(2)
			}
		}
		err = m.Steps(-steps)

	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", verr)
			os.Exit(1)
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return

	default:
		fmt.Fprintf(os.Stderr, "migrate: unknown command %q\n", flag.Arg(0))
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("migrations applied")
}
