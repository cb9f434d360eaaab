package movedto

// Failure codes attached to a QueryError. They only feed diagnostics; every
// code produces the same FallbackMove on stdout.
const (
	CodeNoCredential      = "no_credential"
	CodeClientUnavailable = "client_unavailable"
	CodePromptFailed      = "prompt_failed"
	CodeRequestFailed     = "request_failed"
	CodeTimeout           = "timeout"
	CodeAuthRejected      = "auth_rejected"
	CodeRateLimited       = "rate_limited"
	CodeAPIError          = "api_error"
	CodeMalformedResponse = "malformed_response"
	CodeEmptyChoices      = "empty_choices"
)

type QueryError struct {
	Code    string
	Message string
	Status  int
}

func (e QueryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "move query error"
}
