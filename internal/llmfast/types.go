package llmfast

import "fmt"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat/completions. Temperature is always
// sent, including zero.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

// ReplyMessage is the response-side message. A nil Content means the field
// was absent or null.
type ReplyMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// Message is nil when the choice carries no message object.
type ChatChoice struct {
	Index        int           `json:"index"`
	Message      *ReplyMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

type ChatResponse struct {
	ID      string       `json:"id,omitempty"`
	Model   string       `json:"model,omitempty"`
	Choices []ChatChoice `json:"choices"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api error: status=%d body=%s", e.Status, e.Body)
}
