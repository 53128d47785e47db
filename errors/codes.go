package errors

// ErrorCode identifies the category of an AppError in responses and logs
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_MISSING_TRANSCRIPT
	ErrorCode_GENERATION_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:            "UNKNOWN",
	ErrorCode_INTERNAL:           "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:   "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:    "INVALID_PAYLOAD",
	ErrorCode_MISSING_TRANSCRIPT: "MISSING_TRANSCRIPT",
	ErrorCode_GENERATION_FAILED:  "GENERATION_FAILED",
}

// String returns the name of the error code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
