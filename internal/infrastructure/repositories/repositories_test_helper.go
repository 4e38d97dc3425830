package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(150),
		cpf VARCHAR(20) UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_superuser BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOrderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code VARCHAR(50) NOT NULL,
		value NUMERIC(12,2) NOT NULL,
		cashback_percentage INTEGER,
		cashback_value NUMERIC(12,2),
		status VARCHAR(20) NOT NULL DEFAULT 'IN_VALIDATION',
		date DATETIME,
		reseller_cpf VARCHAR(20) NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
