package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Act layer.
	ErrBadRequest   = "E_BAD_REQUEST"
	ErrUnknownLevel = "E_UNKNOWN_LEVEL"
	ErrBadCode      = "E_BAD_CODE"
	ErrInternal     = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadRequest:      {},
	ErrUnknownLevel:    {},
	ErrBadCode:         {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
