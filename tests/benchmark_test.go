package tests

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"skiptree/pkg/skiptree"
)

// BenchmarkInsert_SkipTree benchmarks Put performance for the lock-free
// skip tree.
func BenchmarkInsert_SkipTree(b *testing.B) {
	m := skiptree.New[int, string]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("name%d", i)); err != nil {
			b.Fatalf("Put failed at iteration %d: %v", i, err)
		}
	}
}

// BenchmarkInsert_SQLite benchmarks INSERT performance for SQLite, the
// on-disk baseline the in-memory skip tree is compared against.
func BenchmarkInsert_SQLite(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		b.Fatalf("Failed to open SQLite: %v", err)
	}
	defer db.Close()

	_, err = db.Exec("CREATE TABLE bench (id INT PRIMARY KEY, name TEXT, value INT)")
	if err != nil {
		b.Fatalf("CREATE TABLE failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := db.Exec(fmt.Sprintf("INSERT INTO bench VALUES (%d, 'name%d', %d)", i, i, i*10))
		if err != nil {
			b.Fatalf("INSERT failed: %v", err)
		}
	}
}

// BenchmarkGet_SkipTree benchmarks Get performance for the skip tree
// against a pre-populated map.
func BenchmarkGet_SkipTree(b *testing.B) {
	m := skiptree.New[int, string]()
	for i := 0; i < 100; i++ {
		m.Put(i, fmt.Sprintf("name%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Get(50); err != nil {
			b.Fatalf("Get failed: %v", err)
		}
	}
}

// BenchmarkSelect_SQLite benchmarks SELECT performance for SQLite.
func BenchmarkSelect_SQLite(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		b.Fatalf("Failed to open SQLite: %v", err)
	}
	defer db.Close()

	db.Exec("CREATE TABLE bench (id INT PRIMARY KEY, name TEXT, value INT)")
	for i := 0; i < 100; i++ {
		db.Exec(fmt.Sprintf("INSERT INTO bench VALUES (%d, 'name%d', %d)", i, i, i*10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rows, err := db.Query("SELECT * FROM bench WHERE id = 50")
		if err != nil {
			b.Fatalf("SELECT failed: %v", err)
		}
		rows.Close()
	}
}

// BenchmarkReplace_SkipTree benchmarks Replace performance for the skip
// tree against a pre-populated map.
func BenchmarkReplace_SkipTree(b *testing.B) {
	m := skiptree.New[int, string]()
	for i := 0; i < 100; i++ {
		m.Put(i, fmt.Sprintf("name%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Replace(50, fmt.Sprintf("value%d", i)); err != nil {
			b.Fatalf("Replace failed: %v", err)
		}
	}
}

// BenchmarkUpdate_SQLite benchmarks UPDATE performance for SQLite.
func BenchmarkUpdate_SQLite(b *testing.B) {
	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		b.Fatalf("Failed to open SQLite: %v", err)
	}
	defer db.Close()

	db.Exec("CREATE TABLE bench (id INT PRIMARY KEY, name TEXT, value INT)")
	for i := 0; i < 100; i++ {
		db.Exec(fmt.Sprintf("INSERT INTO bench VALUES (%d, 'name%d', %d)", i, i, i*10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := db.Exec(fmt.Sprintf("UPDATE bench SET value = %d WHERE id = 50", i))
		if err != nil {
			b.Fatalf("UPDATE failed: %v", err)
		}
	}
}

// TestPrintBenchmarkComparison runs the benchmarks and prints a
// comparison table.
func TestPrintBenchmarkComparison(t *testing.T) {
	if os.Getenv("RUN_BENCHMARK_COMPARISON") != "1" {
		t.Skip("Skipping benchmark comparison. Set RUN_BENCHMARK_COMPARISON=1 to run.")
	}

	t.Log("Run benchmarks with: go test -bench=. -benchmem ./tests/")
	t.Log("Compare skiptree.Map vs SQLite results")
}
