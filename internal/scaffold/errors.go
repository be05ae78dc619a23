package scaffold

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/10up/scaffold/internal/recipe"
	"github.com/10up/scaffold/internal/rename"
)

var (
	// ErrDestinationExists is returned before any mutation when the target
	// directory is already present.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrUnknownProjectType is returned when no recipe matches the requested type.
	ErrUnknownProjectType = recipe.ErrUnknownType

	// ErrSkipped marks a nested target that never ran because its umbrella failed.
	ErrSkipped = errors.New("skipped")
)

// StepError reports the target, state and path a run failed at.
type StepError struct {
	Target string
	State  State
	Path   string
	Err    error
}

func (e *StepError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Target, e.State, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Target, e.State, e.Path, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// failedPath extracts the filesystem path an error refers to.
func failedPath(err error) string {
	var re *rename.Error
	if errors.As(err, &re) {
		return re.From
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Path
	}
	return ""
}
