package exitcode

import (
	"os"

	"github.com/DJRivera25/blogctl/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates input was rejected before any network call
	ValidationError = 3

	// AuthError indicates an authentication failure (missing or rejected token)
	AuthError = 4

	// ForbiddenError indicates a valid session with insufficient permission
	ForbiddenError = 5

	// NotFound indicates a stale or unknown resource id
	NotFound = 6

	// NetworkError indicates a transport-level failure
	NetworkError = 7

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps a typed error to its exit code. Unknown errors map
// to GeneralError.
func DetermineExitCode(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.IsValidation(err):
		return ValidationError
	case errors.IsUnauthorized(err):
		return AuthError
	case errors.IsForbidden(err):
		return ForbiddenError
	case errors.IsNotFound(err):
		return NotFound
	case errors.IsNetwork(err):
		return NetworkError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationError:
		return "Validation error (input rejected before any network call)"
	case AuthError:
		return "Authentication error"
	case ForbiddenError:
		return "Permission denied"
	case NotFound:
		return "Resource not found"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
