package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"

	"github.com/murkotick/catalog-mirror/internal/pkg/spannerdb"
)

// A tiny migration helper that applies the DDL in migrations/001_initial_schema.sql
// to a Cloud Spanner database (typically the emulator for local dev).
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate -create
func main() {
	create := flag.Bool("create", false, "create the instance and database first (emulator)")
	ddlPath := flag.String("ddl", filepath.Join("migrations", "001_initial_schema.sql"), "DDL file to apply")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := os.Getenv("SPANNER_DATABASE")
	if db == "" {
		log.Fatal("SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}
	name, err := spannerdb.ParseName(db)
	if err != nil {
		log.Fatal(err)
	}

	stmts, err := spannerdb.ReadDDL(*ddlPath)
	if err != nil {
		log.Fatalf("read DDL: %v", err)
	}
	if len(stmts) == 0 {
		log.Fatalf("no DDL statements found in %s", *ddlPath)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		log.Fatalf("database admin client: %v", err)
	}
	defer admin.Close()

	if *create {
		instAdmin, err := instance.NewInstanceAdminClient(ctx)
		if err != nil {
			log.Fatalf("instance admin client: %v", err)
		}
		defer instAdmin.Close()

		if err := spannerdb.EnsureInstance(ctx, instAdmin, name); err != nil {
			log.Fatal(err)
		}
		if err := spannerdb.CreateDatabase(ctx, admin, name); err != nil {
			log.Fatal(err)
		}
	}

	if err := spannerdb.ApplyDDL(ctx, admin, name, stmts); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Applied %d DDL statements to %s\n", len(stmts), db)
}
