package movedto

// FallbackMove is printed whenever no model answer could be obtained.
const FallbackMove = "0 0 0 0"

// Outcome is the result of a single move query. Exactly one of the two terminal
// states is represented: a model answer (Fallback false) or the fallback move
// with the discarded reason in Err.
type Outcome struct {
	Move     string
	Fallback bool
	Cached   bool
	Err      *QueryError
}

// Success wraps a model answer.
func Success(move string, cached bool) Outcome {
	return Outcome{Move: move, Cached: cached}
}

// Fallback returns the fallback outcome for the given reason.
func Fallback(code, message string, status int) Outcome {
	return Outcome{
		Move:     FallbackMove,
		Fallback: true,
		Err:      &QueryError{Code: code, Message: message, Status: status},
	}
}
