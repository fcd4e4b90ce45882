package multicast

// SlotKind distinguishes a produced value from the two terminal signals.
type SlotKind int

const (
	SlotValue SlotKind = iota
	SlotFault
	SlotCompleted
)

func (k SlotKind) String() string {
	switch k {
	case SlotValue:
		return "value"
	case SlotFault:
		return "fault"
	case SlotCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Slot is one produced item or terminal signal at an absolute index.
// Slots are immutable once created.
type Slot[T any] struct {
	Index uint64
	Kind  SlotKind
	Value T
	Err   error
}

// Terminal reports whether the slot ends the sequence.
func (s Slot[T]) Terminal() bool {
	return s.Kind != SlotValue
}

// kindOf classifies an Iterator.Next result.
func kindOf(ok bool, err error) SlotKind {
	switch {
	case err != nil:
		return SlotFault
	case !ok:
		return SlotCompleted
	default:
		return SlotValue
	}
}

func newSlot[T any](index uint64, v T, ok bool, err error) Slot[T] {
	switch kindOf(ok, err) {
	case SlotFault:
		return Slot[T]{Index: index, Kind: SlotFault, Err: err}
	case SlotCompleted:
		return Slot[T]{Index: index, Kind: SlotCompleted}
	default:
		return Slot[T]{Index: index, Kind: SlotValue, Value: v}
	}
}
