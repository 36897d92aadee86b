// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and the handlers to distinguish between different failure
// scenarios without knowing which store produced them.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
// For reservations this is the (venue, active date) index, i.e. another
// pending or confirmed booking already holds the day.
var ErrDuplicate = errors.New("duplicate")

// ErrStaleStatus is returned by conditional status updates when the row is
// no longer in the expected status, typically because a concurrent request
// changed it first.
var ErrStaleStatus = errors.New("status changed concurrently")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL duplicate key error.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
