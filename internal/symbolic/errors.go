package symbolic

import "errors"

var (
	// ErrNotConnected indicates two frames or points share no orientation or position path.
	ErrNotConnected = errors.New("symbolic: not connected")

	// ErrAlreadyOriented indicates a frame that already has a parent orientation.
	ErrAlreadyOriented = errors.New("symbolic: frame already oriented")

	// ErrFrameCycle indicates an orientation that would make a frame its own ancestor.
	ErrFrameCycle = errors.New("symbolic: orientation cycle")

	// ErrVelocityUndefined indicates a point velocity that was never set in the frame.
	ErrVelocityUndefined = errors.New("symbolic: velocity undefined")

	// ErrInvalidAxis indicates a zero axis or one that cannot be expressed where required.
	ErrInvalidAxis = errors.New("symbolic: invalid axis")

	// ErrDuplicate indicates an object added twice to a system.
	ErrDuplicate = errors.New("symbolic: duplicate entry")

	// ErrUnboundSymbol indicates evaluation without a value for every symbol.
	ErrUnboundSymbol = errors.New("symbolic: unbound symbol")

	// ErrAuxiliaryApplied indicates auxiliary speeds applied twice or a force added after.
	ErrAuxiliaryApplied = errors.New("symbolic: auxiliary speeds already applied")

	// ErrUndefined indicates evaluation of an expression that divided by zero.
	ErrUndefined = errors.New("symbolic: undefined value")
)
