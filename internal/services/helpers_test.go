package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aurastyle/wardrobe-be/internal/database"
	"github.com/aurastyle/wardrobe-be/internal/models"
)

// newTestDB opens a private in-memory database with the full schema.
// A single connection keeps every statement on the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

// fakeAnalyzer returns a canned verdict without touching the network.
type fakeAnalyzer struct {
	analysis models.GarmentAnalysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) AnalyzeGarment(ctx context.Context, photo string) (models.GarmentAnalysis, error) {
	f.calls++
	if f.err != nil {
		return models.GarmentAnalysis{}, f.err
	}
	return f.analysis, nil
}

// fakeNotifier records pushed actions per user.
type fakeNotifier struct {
	actions []string
}

func (f *fakeNotifier) NotifyUser(userID, action string, payload interface{}) {
	f.actions = append(f.actions, action)
}
