package entities

// ChatTurn is one prior exchange in a transcript Q&A conversation. Turns
// are transient: the caller keeps the history and resends it with every
// question.
type ChatTurn struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// Chat roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)
