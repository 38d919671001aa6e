package errors

// ErrorCode identifies a class of application error
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT

	// Transcript / analysis
	ErrorCode_TRANSCRIPT_VALIDATION_FAILED
	ErrorCode_TRANSCRIPT_PARSE_FAILED
	ErrorCode_ANALYSIS_FAILED

	// Meetings / speakers
	ErrorCode_MEETING_NOT_FOUND
	ErrorCode_MEETING_NOT_ANALYZED
	ErrorCode_SPEAKER_NOT_FOUND

	// Integration
	ErrorCode_INTEGRATION_CACHE_FAILED

	// Database
	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
	ErrorCode_DB_MIGRATION_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                      "UNKNOWN",
	ErrorCode_INTERNAL:                     "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:             "INVALID_ARGUMENT",
	ErrorCode_TRANSCRIPT_VALIDATION_FAILED: "TRANSCRIPT_VALIDATION_FAILED",
	ErrorCode_TRANSCRIPT_PARSE_FAILED:      "TRANSCRIPT_PARSE_FAILED",
	ErrorCode_ANALYSIS_FAILED:              "ANALYSIS_FAILED",
	ErrorCode_MEETING_NOT_FOUND:            "MEETING_NOT_FOUND",
	ErrorCode_MEETING_NOT_ANALYZED:         "MEETING_NOT_ANALYZED",
	ErrorCode_SPEAKER_NOT_FOUND:            "SPEAKER_NOT_FOUND",
	ErrorCode_INTEGRATION_CACHE_FAILED:     "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:         "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:              "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:        "DB_TRANSACTION_FAILED",
	ErrorCode_DB_MIGRATION_FAILED:          "DB_MIGRATION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
