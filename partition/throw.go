package partition

import "github.com/pkg/errors"

// Threading errors up and down the vertex bookkeeping of every stage would add
// a lot of noise. Instead, the stages panic with a *GeometryError, and each
// exported entry point recovers it into a plain error.

// GeometryError reports input the pipeline cannot process: wrong winding,
// self-intersection, or edges that do not close into rings.
type GeometryError struct {
	err error
}

func (e *GeometryError) Error() string {
	return e.err.Error()
}

func (e *GeometryError) Unwrap() error {
	return e.err
}

// Panic with a *GeometryError.
func fatalf(format string, args ...interface{}) {
	panic(&GeometryError{errors.Errorf(format, args...)})
}

// HandlePanicRecover converts a recovered *GeometryError into an error. Any
// other panic value, runtime errors included, is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if geometryError, ok := r.(*GeometryError); ok {
			return geometryError
		}
		panic(r)
	}
	return nil
}
