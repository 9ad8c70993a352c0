package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrNoDocument   = errors.New("db: no document matched")
	ErrDuplicateKey = errors.New("db: duplicate key")
)

// Op constants map to MongoDB command names for error context.
const (
	OpInsertOne  = "insertOne"
	OpInsertMany = "insertMany"
	OpFindOne    = "findOne"
	OpFind       = "find"
	OpAggregate  = "aggregate"
	OpDeleteMany = "deleteMany"
	OpPing       = "ping"
	OpIndexes    = "createIndexes"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
