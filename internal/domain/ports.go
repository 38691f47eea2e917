package domain

import "context"

// RecipeTable resolves meal names to ingredient lists. Implementations
// can be in-memory (hardcoded), file-based, or API-backed.
type RecipeTable interface {
	Lookup(meal string) ([]RecipeLine, error)
	ListKnown() []string
}

// OrderLog persists finalized orders. Append must be atomic with respect
// to prior entries: a failed append never corrupts what was already
// written. Implementations can be a JSON file, SQLite, or a queue.
type OrderLog interface {
	Append(ctx context.Context, order *Order) error
	List(ctx context.Context) ([]Order, error)
}

// IntentParser converts raw user input into structured intents.
// Implementations can be keyword-based, regex, or LLM-powered.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers assistant replies to the user. Implementations can
// write to stdout or hand the text to a TTS pipeline.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
