package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestLikeOperatorByDialect(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{dialect: "postgres", want: "ILIKE"},
		{dialect: "postgresql", want: "ILIKE"},
		{dialect: " Postgres ", want: "ILIKE"},
		{dialect: "sqlite", want: "LIKE"},
		{dialect: "mysql", want: "LIKE"},
		{dialect: "", want: "LIKE"},
	}
	for _, tt := range tests {
		if got := likeOperatorByDialect(tt.dialect); got != tt.want {
			t.Fatalf("likeOperatorByDialect(%q) want %s got %s", tt.dialect, tt.want, got)
		}
	}
}

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db dialect want sqlite got %s", got)
	}
	if got := dbDialectName(&gorm.DB{}); got != "sqlite" {
		t.Fatalf("missing dialector want sqlite got %s", got)
	}
}

func TestLikeOperatorOnSQLiteConnection(t *testing.T) {
	dsn := fmt.Sprintf("file:sql_dialect_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if got := likeOperator(db); got != "LIKE" {
		t.Fatalf("sqlite like operator want LIKE got %s", got)
	}
}
