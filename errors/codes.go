package errors

// ErrorCode identifies an application error category in responses and logs
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_INVALID_PAYLOAD

	// Upload / audio errors
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE
	ErrorCode_UPLOAD_TOO_LARGE
	ErrorCode_AUDIO_NORMALIZE_FAILED

	// AI stage errors
	ErrorCode_AI_TRANSCRIPTION_FAILED
	ErrorCode_AI_SUMMARY_FAILED
	ErrorCode_AI_SERVICE_UNAVAILABLE
	ErrorCode_AI_QUOTA_EXCEEDED

	// Database errors
	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                 "UNKNOWN",
	ErrorCode_HTTP_OK:                 "OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:               "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE: "UPLOAD_UNSUPPORTED_TYPE",
	ErrorCode_UPLOAD_TOO_LARGE:        "UPLOAD_TOO_LARGE",
	ErrorCode_AUDIO_NORMALIZE_FAILED:  "AUDIO_NORMALIZE_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED: "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:       "AI_SUMMARY_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:  "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:       "AI_QUOTA_EXCEEDED",
	ErrorCode_DB_CONNECTION_FAILED:    "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
}

// String returns the symbolic name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
