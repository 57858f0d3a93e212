package db_test

import (
	"testing"

	"github.com/ccslim/ccslim/internal/iodb"
	"github.com/ccslim/ccslim/pkg/db"
)

// TestSQLiteArchiveImplementsInterface checks the contract at compile time.
func TestSQLiteArchiveImplementsInterface(t *testing.T) {
	var _ db.Archiver = iodb.NewSQLiteArchive()
}
