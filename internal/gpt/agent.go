package gpt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Agent wraps the chat Client with grocery-domain context building.
// Its one job is turning free-form utterances into the closed intent
// set the dispatcher understands.
type Agent struct {
	client *Client
	log    *logger.Logger
}

// NewAgent creates an intent-extraction agent backed by the given Client.
func NewAgent(client *Client, log *logger.Logger) *Agent {
	return &Agent{client: client, log: log}
}

// classifyResponse is the JSON the model returns for intent classification.
type classifyResponse struct {
	Intent   string `json:"intent"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Classify sends unrecognised user input to the model together with the
// catalog, recipe names, and current cart, and returns a structured
// intent. Classification failure degrades to IntentUnknown, never an
// error the session would trip over.
func (a *Agent) Classify(ctx context.Context, input string, items []domain.CatalogItem, meals []string, cartLines []domain.CartLine) (*domain.Intent, error) {
	msgs := []Message{
		{Role: RoleSystem, Content: PromptClassify},
		{Role: RoleUser, Content: buildContext(items, meals, cartLines)},
		// Fake an ack so the model treats context as established.
		{Role: RoleAssistant, Content: "Got it, I have the context."},
		{Role: RoleUser, Content: input},
	}

	raw, err := a.client.Chat(ctx, msgs)
	if err != nil {
		return nil, err
	}

	raw = stripCodeFence(raw)

	var resp classifyResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		a.log.Error("gpt: failed to parse classify JSON: %v\nraw: %s", err, raw)
		return &domain.Intent{Type: domain.IntentUnknown, Raw: input}, nil
	}

	intentType := domain.IntentFromString(resp.Intent)
	a.log.Debug("gpt: classified %q -> %s (item=%q qty=%d)", input, intentType, resp.Item, resp.Quantity)

	return &domain.Intent{
		Type:     intentType,
		Item:     strings.TrimSpace(resp.Item),
		Quantity: resp.Quantity,
		Raw:      input,
	}, nil
}

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence line.
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// buildContext serializes what the store sells, which recipes exist,
// and what's in the cart, so the model maps utterances onto real names
// instead of inventing products.
func buildContext(items []domain.CatalogItem, meals []string, cartLines []domain.CartLine) string {
	var b strings.Builder

	b.WriteString("[Catalog]\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s (%.2f)\n", it.Name, it.Price)
	}

	b.WriteString("\n[Known recipes]\n")
	for _, m := range meals {
		fmt.Fprintf(&b, "- %s\n", m)
	}

	b.WriteString("\n[Cart]\n")
	if len(cartLines) == 0 {
		b.WriteString("empty\n")
	} else {
		for _, l := range cartLines {
			fmt.Fprintf(&b, "- %s x%d\n", l.Item, l.Quantity)
		}
	}

	return b.String()
}
