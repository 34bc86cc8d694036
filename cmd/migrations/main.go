// Command migrations applies the SQL migration files that live next to the
// Postgres repositories. With no arguments it applies every *.up.sql file
// in order; with a name argument it applies only the matching file.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/crew-app/crew/internal/config"
)

const migrationsDir = "internal/adapters/repository/postgres/migrations"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var only string
	if len(os.Args) > 1 {
		only = os.Args[1]
	}

	applied, err := applyMigrations(db, migrationsDir, only)
	if err != nil {
		log.Fatal(err)
	}
	if applied == 0 && only != "" {
		log.Fatalf("no migration matching %q found", only)
	}
	fmt.Printf("applied %d migration(s)\n", applied)
}

// applyMigrations runs every up migration in lexical order, or only the one
// whose file name contains the given name.
func applyMigrations(db *sql.DB, dir, only string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read migrations directory: %w", err)
	}

	applied := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		if only != "" && !strings.Contains(entry.Name(), only) {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return applied, fmt.Errorf("execute migration %s: %w", entry.Name(), err)
		}
		applied++
	}
	return applied, nil
}
