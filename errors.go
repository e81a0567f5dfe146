package retrograde

import "fmt"

// ErrorKind defines an enum of domain failures of the physics and geometry core.
type ErrorKind uint8

const (
	// ZeroDistance is raised when two bodies share a position during force computation.
	ZeroDistance ErrorKind = iota + 1
	// DegenerateLine is raised when the two points defining a line coincide.
	DegenerateLine
	// NoIntersection is raised when a line does not cross the reference circle.
	NoIntersection
)

func (k ErrorKind) String() string {
	switch k {
	case ZeroDistance:
		return "zero distance"
	case DegenerateLine:
		return "degenerate line"
	case NoIntersection:
		return "no intersection"
	}
	panic("cannot stringify unknown domain error kind")
}

// DomainError is returned when the inputs of a computation have no defined result.
type DomainError struct {
	Kind   ErrorKind
	Detail string
}

func (e *DomainError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is allows errors.Is to match any DomainError of the same kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

// Recoverable returns whether the host may skip the current frame and carry on.
// Only a missed intersection is; the other kinds denote a broken configuration.
func (e *DomainError) Recoverable() bool {
	return e.Kind == NoIntersection
}

// Sentinels for errors.Is.
var (
	ErrZeroDistance   = &DomainError{Kind: ZeroDistance}
	ErrDegenerateLine = &DomainError{Kind: DegenerateLine}
	ErrNoIntersection = &DomainError{Kind: NoIntersection}
)

func newDomainError(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{kind, fmt.Sprintf(format, args...)}
}
