package protocol

// Simulation result codes. All of these are recoverable: the kitchen never
// aborts on bad input, it reports the code and leaves state untouched.
const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Item/order state machine.
	ErrInvalidTransition = "E_INVALID_TRANSITION"
	ErrIncompatibleItems = "E_INCOMPATIBLE_ITEMS"
	ErrNotHeld           = "E_NOT_HELD"

	// Station occupancy/capability.
	ErrSlotOccupied    = "E_SLOT_OCCUPIED"
	ErrStationFull     = "E_STATION_FULL"
	ErrWrongCapability = "E_WRONG_CAPABILITY"
	ErrNoFreeSurface   = "E_NO_FREE_SURFACE"

	// Order matching.
	ErrNoMatchingOrder = "E_NO_MATCHING_ORDER"

	ErrUnknownStation = "E_UNKNOWN_STATION"
	ErrEmptyHand      = "E_EMPTY_HAND"
	ErrInternal       = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest:   {},
	ErrInvalidTransition: {},
	ErrIncompatibleItems: {},
	ErrNotHeld:           {},
	ErrSlotOccupied:      {},
	ErrStationFull:       {},
	ErrWrongCapability:   {},
	ErrNoFreeSurface:     {},
	ErrNoMatchingOrder:   {},
	ErrUnknownStation:    {},
	ErrEmptyHand:         {},
	ErrInternal:          {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
