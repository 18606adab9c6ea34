package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the test database, expected at localhost:3306 as
// 'factoria_test'. Tests are skipped when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/factoria_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"ProductRawMaterial", "Product", "RawMaterial"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func SetupTestTables(t *testing.T, db *sql.DB) {
	createRawMaterialTable := `
	CREATE TABLE IF NOT EXISTS RawMaterial (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		stockQuantity INT NOT NULL DEFAULT 0
	)`

	createProductTable := `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		stock INT NOT NULL DEFAULT 0
	)`

	createLinkTable := `
	CREATE TABLE IF NOT EXISTS ProductRawMaterial (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId INT NOT NULL,
		rawMaterialId INT NOT NULL,
		quantityRequired INT NOT NULL DEFAULT 1,
		UNIQUE KEY uq_product_material (productId, rawMaterialId),
		FOREIGN KEY (productId) REFERENCES Product(id) ON DELETE CASCADE,
		FOREIGN KEY (rawMaterialId) REFERENCES RawMaterial(id) ON DELETE CASCADE,
		INDEX idx_product (productId),
		INDEX idx_material (rawMaterialId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"RawMaterial", createRawMaterialTable},
		{"Product", createProductTable},
		{"ProductRawMaterial", createLinkTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
