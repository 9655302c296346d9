package errors

// ErrorCode is a stable machine-readable code carried alongside HTTP status
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// Generic
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Meetings
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 3000
	ErrorCode_MEETING_EMPTY_SOURCE  ErrorCode = 3001
	ErrorCode_MEETING_UPLOAD_FAILED ErrorCode = 3002
	ErrorCode_MEETING_QUEUE_FULL    ErrorCode = 3003
	ErrorCode_MEETING_INVALID_AUDIO ErrorCode = 3004

	// Goals & categories
	ErrorCode_GOAL_NOT_FOUND      ErrorCode = 4000
	ErrorCode_GOAL_INVALID_PARENT ErrorCode = 4001
	ErrorCode_CATEGORY_NOT_FOUND  ErrorCode = 4002

	// Contacts
	ErrorCode_CONTACT_NOT_FOUND ErrorCode = 5000

	// Tasks
	ErrorCode_TASK_NOT_FOUND ErrorCode = 6000

	// Extraction
	ErrorCode_EXTRACTION_FAILED        ErrorCode = 7000
	ErrorCode_EXTRACTION_RUN_NOT_FOUND ErrorCode = 7001

	// Infrastructure
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 8000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 8001
	ErrorCode_STORAGE_FAILED        ErrorCode = 8002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:        "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:          "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:       "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:        "MEETING_NOT_FOUND",
	ErrorCode_MEETING_EMPTY_SOURCE:     "MEETING_EMPTY_SOURCE",
	ErrorCode_MEETING_UPLOAD_FAILED:    "MEETING_UPLOAD_FAILED",
	ErrorCode_MEETING_QUEUE_FULL:       "MEETING_QUEUE_FULL",
	ErrorCode_MEETING_INVALID_AUDIO:    "MEETING_INVALID_AUDIO",
	ErrorCode_GOAL_NOT_FOUND:           "GOAL_NOT_FOUND",
	ErrorCode_GOAL_INVALID_PARENT:      "GOAL_INVALID_PARENT",
	ErrorCode_CATEGORY_NOT_FOUND:       "CATEGORY_NOT_FOUND",
	ErrorCode_CONTACT_NOT_FOUND:        "CONTACT_NOT_FOUND",
	ErrorCode_TASK_NOT_FOUND:           "TASK_NOT_FOUND",
	ErrorCode_EXTRACTION_FAILED:        "EXTRACTION_FAILED",
	ErrorCode_EXTRACTION_RUN_NOT_FOUND: "EXTRACTION_RUN_NOT_FOUND",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:    "DB_TRANSACTION_FAILED",
	ErrorCode_STORAGE_FAILED:           "STORAGE_FAILED",
}

// String returns the symbolic name for the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
