package fdtd

import "errors"

// Domain errors for grid construction and component registration. All are
// raised eagerly at the call that caused them; nothing is deferred into the
// stepping loop.
var (
	// ErrInvalidShape indicates a grid shape without exactly 3 positive dimensions.
	ErrInvalidShape = errors.New("emgrid: grid shape must be 3 positive dimensions")

	// ErrTooManyKeys indicates an attachment with more than 3 axis keys.
	ErrTooManyKeys = errors.New("emgrid: maximum number of grid indices is 3")

	// ErrLengthMismatch indicates list indices of unequal length across axes.
	ErrLengthMismatch = errors.New("emgrid: list indices must have equal lengths")

	// ErrNameTaken indicates a component name collision on the grid.
	ErrNameTaken = errors.New("emgrid: component name already registered")

	// ErrAlreadyRegistered indicates a repeat attachment of a component
	// whose registration already completed. Registration is one-shot.
	ErrAlreadyRegistered = errors.New("emgrid: component already registered")

	// ErrIndexOutOfRange indicates a single-cell index outside its axis.
	ErrIndexOutOfRange = errors.New("emgrid: index out of range for axis")

	// ErrCourantTooLarge indicates a courant number above the CFL stability
	// limit for the grid's dimensionality.
	ErrCourantTooLarge = errors.New("emgrid: courant number exceeds CFL stability limit")

	// ErrUnknownComponent indicates an attachment that satisfies none of the
	// four component contracts.
	ErrUnknownComponent = errors.New("emgrid: component implements no grid contract")
)
