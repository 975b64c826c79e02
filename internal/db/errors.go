package db

// Op constants name the failing operation for error context.
const (
	OpConnect  = "CONNECT"
	OpPing     = "PING"
	OpQuery    = "QUERY"
	OpScan     = "SCAN"
	OpRegister = "REGISTER"
	OpExists   = "EXISTS"
	OpHMGet    = "HMGET"
	OpHSet     = "HSET"
	OpDel      = "DEL"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
