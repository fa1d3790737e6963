package errors

// ErrorCode is a machine-readable error identifier returned in API responses.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// Generic
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_FORBIDDEN        ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1006

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = 2001
	ErrorCode_AUTH_INVALID_CREDENTIALS   ErrorCode = 2002
	ErrorCode_AUTH_USER_NOT_FOUND        ErrorCode = 2003
	ErrorCode_AUTH_USER_ALREADY_EXISTS   ErrorCode = 2004
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = 2005

	// Meetings
	ErrorCode_MEETING_NOT_FOUND      ErrorCode = 3000
	ErrorCode_MEETING_INVALID_STATE  ErrorCode = 3001
	ErrorCode_REPORT_NOT_FOUND       ErrorCode = 3002
	ErrorCode_UPLOAD_IN_PROGRESS     ErrorCode = 3003
	ErrorCode_UNSUPPORTED_MEDIA_TYPE ErrorCode = 3004
	ErrorCode_UPLOAD_TOO_LARGE       ErrorCode = 3005
	ErrorCode_MISSING_AUDIO_FILE     ErrorCode = 3006

	// Pipeline / AI
	ErrorCode_AI_TRANSCRIPTION_FAILED   ErrorCode = 4000
	ErrorCode_REPORT_GENERATION_FAILED  ErrorCode = 4001
	ErrorCode_PROCESSING_FAILED         ErrorCode = 4002
	ErrorCode_AI_SERVICE_UNAVAILABLE    ErrorCode = 4003

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 5001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 5002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:   "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:        "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:   "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN: "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID_STATE:      "MEETING_INVALID_STATE",
	ErrorCode_REPORT_NOT_FOUND:           "REPORT_NOT_FOUND",
	ErrorCode_UPLOAD_IN_PROGRESS:         "UPLOAD_IN_PROGRESS",
	ErrorCode_UNSUPPORTED_MEDIA_TYPE:     "UNSUPPORTED_MEDIA_TYPE",
	ErrorCode_UPLOAD_TOO_LARGE:           "UPLOAD_TOO_LARGE",
	ErrorCode_MISSING_AUDIO_FILE:         "MISSING_AUDIO_FILE",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_REPORT_GENERATION_FAILED:   "REPORT_GENERATION_FAILED",
	ErrorCode_PROCESSING_FAILED:          "PROCESSING_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
