// Package spannerdb provisions Spanner databases for the backend, its
// migration tool and emulator tests.
package spannerdb

import (
	"context"
	"fmt"
	"os"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Name is a fully qualified database path split into its parts.
type Name struct {
	Project  string
	Instance string
	Database string
}

// ParseName splits projects/<p>/instances/<i>/databases/<d>.
func ParseName(s string) (Name, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return Name{}, fmt.Errorf("spannerdb: malformed database name %q", s)
	}
	return Name{Project: parts[1], Instance: parts[3], Database: parts[5]}, nil
}

func (n Name) ProjectPath() string  { return "projects/" + n.Project }
func (n Name) InstancePath() string { return n.ProjectPath() + "/instances/" + n.Instance }
func (n Name) String() string       { return n.InstancePath() + "/databases/" + n.Database }

// ReadDDL reads a migration file and splits it into statements.
func ReadDDL(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitDDL(string(b)), nil
}

// SplitDDL splits on ';' and drops blank statements and -- comment lines.
func SplitDDL(sql string) []string {
	// Normalize line endings for Windows-authored files.
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	lines := strings.Split(sql, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "--") {
			continue
		}
		kept = append(kept, l)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// EnsureInstance creates the instance on the emulator config when missing.
func EnsureInstance(ctx context.Context, admin *instance.InstanceAdminClient, n Name) error {
	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: n.InstancePath()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("get instance: %w", err)
	}

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     n.ProjectPath(),
		InstanceId: n.Instance,
		Instance: &instancepb.Instance{
			Config:      n.ProjectPath() + "/instanceConfigs/emulator-config",
			DisplayName: n.Instance,
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("create instance wait: %w", err)
	}
	return nil
}

// CreateDatabase creates an empty database. An existing one is left as is.
func CreateDatabase(ctx context.Context, admin *database.DatabaseAdminClient, n Name) error {
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          n.InstancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", n.Database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("create database wait: %w", err)
	}
	return nil
}

// ApplyDDL runs stmts as one schema update and waits for it.
func ApplyDDL(ctx context.Context, admin *database.DatabaseAdminClient, n Name, stmts []string) error {
	if len(stmts) == 0 {
		return fmt.Errorf("spannerdb: no DDL statements")
	}
	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   n.String(),
		Statements: stmts,
	})
	if err != nil {
		return fmt.Errorf("update ddl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("update ddl wait: %w", err)
	}
	return nil
}

func DropDatabase(ctx context.Context, admin *database.DatabaseAdminClient, n Name) error {
	return admin.DropDatabase(ctx, &databasepb.DropDatabaseRequest{Database: n.String()})
}
