// Package exitcode defines exit codes for the CLI.
package exitcode

import "todo/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, not found, ambiguous).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a storage or remote API error.
	BackendError = 3
)

// For maps an error returned by the service layer to an exit code.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case service.IsUserError(err):
		return UserError
	default:
		return BackendError
	}
}
