// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid text, not found).
	UserError = 1

	// StorageError indicates the storage slot could not be opened or written.
	StorageError = 2

	// InternalError indicates an unexpected failure, such as the HTTP API
	// stopping with an error.
	InternalError = 3
)
