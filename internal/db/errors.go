package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op names the logical store operation for error context.
const (
	OpPing       = "PING"
	OpGeoSearch  = "GEOSEARCH"
	OpGeoAdd     = "GEOADD"
	OpListIDs    = "LIST"
	OpCount      = "COUNT"
	OpRecords    = "FETCH"
	OpPutRecords = "PUT"
	OpSchema     = "SCHEMA"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
