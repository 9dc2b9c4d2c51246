package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Abhi005shek/TaskManager/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MapError maps a SQLite error to an appropriate store error, wrapping the
// original for logging. The constraint kind is read from the message because
// the primary result code is shared by every constraint failure.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY"):
		return fmt.Errorf("%w: %v", store.ErrForeignKeyViolation, err)
	case strings.Contains(msg, "UNIQUE"), strings.Contains(msg, "PRIMARY KEY"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
}
