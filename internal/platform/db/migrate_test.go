package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"001_init.sql":       "CREATE TABLE credential (id UUID PRIMARY KEY);",
		"002_report.sql":     "CREATE TABLE report (id UUID PRIMARY KEY);",
		"003_report_idx.sql": "CREATE INDEX idx_report_mobile_dob ON report (mobile, dob);",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 {
		t.Errorf("expected version 1, got %d", migrations[0].Version)
	}
	if migrations[0].Name != "001_init.sql" {
		t.Errorf("expected name 001_init.sql, got %s", migrations[0].Name)
	}
	if migrations[0].SQL != "CREATE TABLE credential (id UUID PRIMARY KEY);" {
		t.Errorf("unexpected SQL content: %s", migrations[0].SQL)
	}
}

func TestLoadMigrations_SortOrder(t *testing.T) {
	dir := t.TempDir()

	// Create files in reverse order to test sorting
	files := []struct {
		name    string
		content string
	}{
		{"010_tables.sql", "SELECT 10;"},
		{"002_second.sql", "SELECT 2;"},
		{"001_first.sql", "SELECT 1;"},
		{"005_middle.sql", "SELECT 5;"},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", f.name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 4 {
		t.Fatalf("expected 4 migrations, got %d", len(migrations))
	}

	expectedVersions := []int{1, 2, 5, 10}
	for i, expected := range expectedVersions {
		if migrations[i].Version != expected {
			t.Errorf("migration[%d]: expected version %d, got %d", i, expected, migrations[i].Version)
		}
	}
}

func TestLoadMigrations_InvalidFilename(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"001_valid.sql":      "SELECT 1;",
		"readme.sql":         "-- this has no version prefix",
		"notes.txt":          "not a sql file",
		"abc_invalid.sql":    "-- non-numeric prefix",
		"002_also_valid.sql": "SELECT 2;",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 valid migrations, got %d", len(migrations))
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	migrator := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := migrator.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing migrations directory")
	}
}

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"001_init.sql":    "SELECT 1;",
		"004_gapped.sql":  "SELECT 4;",
		"notes.txt":       "not a migration",
		"abc_invalid.sql": "-- skipped",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file %s: %v", name, err)
		}
	}

	migrator := NewMigrator(nil, dir)
	path, err := migrator.CreateFile("add_report_notes")
	if err != nil {
		t.Fatalf("CreateFile() error: %v", err)
	}

	// Version continues past the highest existing one
	if filepath.Base(path) != "005_add_report_notes.sql" {
		t.Errorf("expected 005_add_report_notes.sql, got %s", filepath.Base(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scaffolded file: %v", err)
	}
	if string(content) != "-- add_report_notes\n" {
		t.Errorf("unexpected scaffold content: %q", content)
	}

	migrations, err := migrator.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations() error: %v", err)
	}
	if len(migrations) != 3 || migrations[2].Version != 5 {
		t.Errorf("scaffolded file not picked up by the loader: %+v", migrations)
	}
}

func TestCreateFile_EmptyDir(t *testing.T) {
	migrator := NewMigrator(nil, t.TempDir())
	path, err := migrator.CreateFile("init")
	if err != nil {
		t.Fatalf("CreateFile() error: %v", err)
	}
	if filepath.Base(path) != "001_init.sql" {
		t.Errorf("expected 001_init.sql, got %s", filepath.Base(path))
	}
}

func TestCreateFile_InvalidName(t *testing.T) {
	migrator := NewMigrator(nil, t.TempDir())
	for _, name := range []string{"", "Add Notes", "drop;table", "UPPER"} {
		if _, err := migrator.CreateFile(name); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}
