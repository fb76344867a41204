package tableprofiler

import "fmt"

// InvalidInputError indicates the input is not a profilable table:
// wrong shape, duplicate columns, or zero rows. It is fatal; no
// partial result is produced.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{
		Reason: fmt.Sprintf(format, args...),
	}
}
