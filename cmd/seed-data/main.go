// seed-data populates the catalog tables (provinces, fixed and optional
// terms, the default quoter) when they are empty. Idempotent: tables that
// already hold rows are left untouched.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-data
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/ztofreight/quotes_backend/config"
	"bitbucket.org/ztofreight/quotes_backend/models"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	if err := models.SeedDefaultData(db, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed default data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("seed-data: catalog tables populated")
}
