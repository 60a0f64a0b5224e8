package layers

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidName is returned by [Graph.AddLayer] and [Graph.AddStaticLayer]
	// when the layer name is empty.
	ErrInvalidName = errors.New("layer name must not be empty")

	// ErrDuplicateName is returned by [Graph.AddLayer] and
	// [Graph.AddStaticLayer] when a layer with the same name already exists.
	ErrDuplicateName = errors.New("duplicate layer name")

	// ErrUnknownLayer is returned by [Graph.Above] when either endpoint has not
	// been registered.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrStaticConflict is matched by every [*StaticConflictError].
	ErrStaticConflict = errors.New("a static layer is conflicting with another static layer or the minimum layer value (1)")

	// ErrCycle is matched by every [*CycleError].
	ErrCycle = errors.New("cycle detected")
)

// StaticConflictError reports a static layer whose fixed index is not
// strictly greater than the resolved index of a layer it must be above.
type StaticConflictError struct {
	Layer      string // static layer that cannot move
	Index      int    // its fixed index
	Below      string // layer it was constrained to be above
	BelowIndex int    // resolved index of Below
}

func (e *StaticConflictError) Error() string {
	return fmt.Sprintf("%s: %q (%d) must be above %q (%d)",
		ErrStaticConflict, e.Layer, e.Index, e.Below, e.BelowIndex)
}

// Is reports whether target is [ErrStaticConflict].
func (e *StaticConflictError) Is(target error) bool { return target == ErrStaticConflict }

// IndexOverflowError reports a dynamic layer that must sit above a layer
// already at math.MaxInt. It matches [ErrStaticConflict]: only a static index
// can reach the top of the int range.
type IndexOverflowError struct {
	Layer string // dynamic layer with no room left
	Below string // layer at math.MaxInt
}

func (e *IndexOverflowError) Error() string {
	return fmt.Sprintf("%s: %q cannot be placed above %q (index %d is the maximum)",
		ErrStaticConflict, e.Layer, e.Below, math.MaxInt)
}

// Is reports whether target is [ErrStaticConflict].
func (e *IndexOverflowError) Is(target error) bool { return target == ErrStaticConflict }

// CycleError reports layers that could not be ordered because their "above"
// constraints form at least one cycle. Unresolved holds every layer left over
// when the solver stalled, sorted by name. It includes the cycle members and
// any layer that sits above one of them.
type CycleError struct {
	Unresolved []string
}

func (e *CycleError) Error() string {
	if len(e.Unresolved) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s among layers: %s", ErrCycle, strings.Join(e.Unresolved, ", "))
}

// Is reports whether target is [ErrCycle].
func (e *CycleError) Is(target error) bool { return target == ErrCycle }
