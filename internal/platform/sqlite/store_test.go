package sqlite_test

import (
	"testing"

	"github.com/Abhi005shek/TaskManager/internal/platform/sqlite"
	"github.com/Abhi005shek/TaskManager/internal/store/storetest"
	"github.com/Abhi005shek/TaskManager/internal/testdb"
)

func TestSQLiteStores(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Stores {
		db := testdb.NewSQLiteDBWithT(t)
		return storetest.Stores{
			Users:         sqlite.NewSQLiteUserStore(db, nil),
			Tasks:         sqlite.NewSQLiteTaskStore(db, nil),
			Notifications: sqlite.NewSQLiteNotificationStore(db, nil),
		}
	})
}
