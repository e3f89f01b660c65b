package core

const (
	AssistantName = "Prototype-X"
	UserAgent     = "protox/0.1"
	Version       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContextChunk is a retrieved snippet and the file it was ingested from.
type ContextChunk struct {
	Source string
	Text   string
}
