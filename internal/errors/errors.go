package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/keyring"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/storage/postgres"
)

// hints maps sentinel errors to a follow-up line printed under the error.
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotLoaded, "run 'tally init' to create the store"},
	{storage.ErrNotFound, "nothing has been recorded under that key yet"},
	{habits.ErrCoreHabit, "use 'tally habit deactivate' instead"},
	{habits.ErrNotFound, "run 'tally habit list' to see habit IDs and titles"},
	{keyring.ErrNotFound, "store credentials with 'tally keyring set'"},
	{keyring.ErrKeyringUnavailable, "set TALLY_DB_CONNECTION or use SQLite storage"},
	{postgres.ErrEmbeddedCredentials, "store the connection string in the keyring and pass --store postgres"},
	{models.ErrInvalid, "check the values passed on the command line"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns the hint for the first known sentinel wrapped by err.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
