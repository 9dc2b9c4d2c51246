package postgres_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/Abhi005shek/TaskManager/internal/platform/postgres"
	"github.com/Abhi005shek/TaskManager/internal/store/storetest"
	"github.com/Abhi005shek/TaskManager/internal/testdb"
	"github.com/stretchr/testify/require"
)

// TestPostgresStores runs the store suite inside one rolled back transaction
// per subtest. It is skipped unless DATABASE_URL is set.
func TestPostgresStores(t *testing.T) {
	db := testdb.GetTestDBWithT(t)

	storetest.Run(t, func(t *testing.T) storetest.Stores {
		tx, err := db.Begin()
		require.NoError(t, err, "Failed to begin transaction")
		t.Cleanup(func() {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				t.Logf("Warning: failed to rollback transaction: %v", err)
			}
		})

		return storetest.Stores{
			Users:         postgres.NewPostgresUserStore(tx, nil),
			Tasks:         postgres.NewPostgresTaskStore(tx, nil),
			Notifications: postgres.NewPostgresNotificationStore(tx, nil),
		}
	})
}
