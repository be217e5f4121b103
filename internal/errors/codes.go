package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// Battle engine codes
	CodeActionNotAllowed   Code = "ACTION_NOT_ALLOWED"
	CodeInvalidBattleState Code = "INVALID_BATTLE_STATE"
	CodeMalformedRoster    Code = "MALFORMED_ROSTER"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
