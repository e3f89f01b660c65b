package core

type FactMemory interface {
	UpdateFromText(text string) (map[string]string, error)
	SummaryPrompt() string
	AddHistory(role, content string) error
	Clear() error
}
