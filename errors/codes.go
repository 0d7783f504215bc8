package errors

// ErrorCode is the application level error code returned in error bodies
type ErrorCode int

const (
	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001

	// Meetings
	ErrorCode_MEETING_NOT_FOUND       ErrorCode = 2000
	ErrorCode_MEETING_INVALID_ID      ErrorCode = 2001
	ErrorCode_MEETING_MISSING_FILE    ErrorCode = 2002
	ErrorCode_MEETING_EXPORT_FAILED   ErrorCode = 2003
	ErrorCode_MEETING_DOCUMENT_FAILED ErrorCode = 2004

	// AI
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3000

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID_ID:         "MEETING_INVALID_ID",
	ErrorCode_MEETING_MISSING_FILE:       "MEETING_MISSING_FILE",
	ErrorCode_MEETING_EXPORT_FAILED:      "MEETING_EXPORT_FAILED",
	ErrorCode_MEETING_DOCUMENT_FAILED:    "MEETING_DOCUMENT_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
