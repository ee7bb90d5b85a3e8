package errors

// ErrorCode identifies an application error class in responses and logs.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1006

	// Meeting
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 3000
	ErrorCode_TRANSCRIPT_REQUIRED   ErrorCode = 3001
	ErrorCode_MEETING_SAVE_FAILED   ErrorCode = 3002
	ErrorCode_MEETING_QUERY_FAILED  ErrorCode = 3003
	ErrorCode_MEETING_UPDATE_FAILED ErrorCode = 3004

	// AI extraction
	ErrorCode_AI_UPSTREAM_FAILED ErrorCode = 4000
	ErrorCode_AI_PARSE_FAILED    ErrorCode = 4001

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_TRANSCRIPT_REQUIRED:        "TRANSCRIPT_REQUIRED",
	ErrorCode_MEETING_SAVE_FAILED:        "MEETING_SAVE_FAILED",
	ErrorCode_MEETING_QUERY_FAILED:       "MEETING_QUERY_FAILED",
	ErrorCode_MEETING_UPDATE_FAILED:      "MEETING_UPDATE_FAILED",
	ErrorCode_AI_UPSTREAM_FAILED:         "AI_UPSTREAM_FAILED",
	ErrorCode_AI_PARSE_FAILED:            "AI_PARSE_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
