package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sportsfield-microservice/internal/domain/repository"
	"github.com/sportsfield-microservice/internal/repository/postgres"
)

// PrepareSchema applies every *.up.sql file from migrationsDir in name order,
// empties sports_fields and seeds it with the given fixture files.
// The table is truncated again when the test finishes.
func (tdb *TestDB) PrepareSchema(t *testing.T, migrationsDir, fixturesDir string, fixtures ...string) {
	t.Helper()

	ups, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	sort.Strings(ups)

	for _, path := range ups {
		if err := tdb.execFile(path); err != nil {
			t.Fatalf("apply migration %s: %v", filepath.Base(path), err)
		}
	}

	ctx := context.Background()
	if err := tdb.Cleanup(ctx); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	t.Cleanup(func() { _ = tdb.Cleanup(ctx) })

	for _, name := range fixtures {
		if err := tdb.execFile(filepath.Join(fixturesDir, name)); err != nil {
			t.Fatalf("load fixture %s: %v", name, err)
		}
	}
}

// FieldSource returns a dataset source reading from the test database
func (tdb *TestDB) FieldSource() repository.DatasetSource {
	return postgres.NewFieldSource(postgres.Wrap(tdb.DB, tdb.Logger))
}

func (tdb *TestDB) execFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil
	}
	_, err = tdb.DB.Exec(string(content))
	return err
}
