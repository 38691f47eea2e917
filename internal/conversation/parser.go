// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns. Input it can't place comes back as IntentUnknown so the
// caller can hand it to an LLM-backed classifier.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex *regexp.Regexp
	build func(m []string) *domain.Intent
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		// "ingredients for pasta", "recipe for tea", "i want to make pasta".
		// Checked before the add rule so "i want to make X" isn't read
		// as adding an item called "to make X".
		{
			regexp.MustCompile(`(?i)^(?:ingredients?\s+for|recipe\s+for|i\s+want\s+to\s+make|i'?m\s+making|make\s+me)\s+(?:a\s+|an\s+|some\s+)?(.+)$`),
			func(m []string) *domain.Intent {
				return &domain.Intent{Type: domain.IntentApplyRecipe, Item: m[1]}
			},
		},
		// "add 2 milk", "add two bananas", "i want 3 eggs", "get milk"
		{
			regexp.MustCompile(`(?i)^(?:add|get|buy|i\s+want|i(?:'d| would)\s+like|put)\s+(?:(\d+|` + numberWords + `)\s+)?(?:of\s+)?(?:the\s+)?(.+?)(?:\s+(?:to|in(?:to)?)\s+(?:my\s+)?cart)?$`),
			func(m []string) *domain.Intent {
				return &domain.Intent{Type: domain.IntentAddItem, Item: m[2], Quantity: parseQuantity(m[1])}
			},
		},
		// "remove eggs", "delete the milk", "take out bread"
		{
			regexp.MustCompile(`(?i)^(?:remove|delete|drop|take\s+out)\s+(?:the\s+)?(.+?)(?:\s+from\s+(?:my\s+)?cart)?$`),
			func(m []string) *domain.Intent {
				return &domain.Intent{Type: domain.IntentRemoveItem, Item: m[1]}
			},
		},
		// "set milk to 3", "change eggs to 12", "update the bread to 2"
		{
			regexp.MustCompile(`(?i)^(?:set|change|update|make)\s+(?:the\s+)?(.+?)\s+to\s+(\d+|` + numberWords + `)$`),
			func(m []string) *domain.Intent {
				return &domain.Intent{Type: domain.IntentSetQuantity, Item: m[1], Quantity: parseQuantity(m[2])}
			},
		},
		// "what's in my cart", "show cart", "cart"
		{
			regexp.MustCompile(`(?i)^(?:what(?:'s| is| do i have)?\s+in\s+(?:my\s+)?cart\??|show\s+(?:me\s+)?(?:my\s+)?cart|(?:my\s+)?cart|basket)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentShowCart} },
		},
		// "place order", "checkout", "that's all, order it"
		{
			regexp.MustCompile(`(?i)^(?:place\s+(?:my\s+|the\s+)?order|check\s*out|order\s+it|confirm\s+(?:my\s+)?order|i'?m\s+done,?\s*order)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentPlaceOrder} },
		},
		// "recipes", "what can you make", "list recipes"
		{
			regexp.MustCompile(`(?i)^(?:recipes?|list\s+recipes?|what\s+(?:recipes\s+do\s+you\s+know|can\s+you\s+make)\??)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentListRecipes} },
		},
		// "catalog", "what do you sell", "what do you have"
		{
			regexp.MustCompile(`(?i)^(?:catalog|menu|what\s+do\s+you\s+(?:sell|have|carry)\??|what\s+can\s+i\s+(?:buy|order)\??)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentShowCatalog} },
		},
		{
			regexp.MustCompile(`(?i)^(?:help|h|\?)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentHelp} },
		},
		{
			regexp.MustCompile(`(?i)^(?:quit|exit|bye|goodbye|q|stop)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentQuit} },
		},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		if m := rule.regex.FindStringSubmatch(trimmed); m != nil {
			intent := rule.build(m)
			intent.Raw = trimmed
			intent.Item = strings.TrimSpace(intent.Item)
			p.log.Debug("matched intent: %s (item=%q qty=%d)", intent.Type, intent.Item, intent.Quantity)
			return intent, nil
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Raw: trimmed}, nil
}

// numberWords covers the counts people actually say out loud.
const numberWords = `one|two|three|four|five|six|seven|eight|nine|ten|a dozen`

var wordValues = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"a dozen": 12,
}

// parseQuantity turns a captured quantity token into an int. An empty
// capture means the user didn't say a number; zero lets the dispatcher
// default it.
func parseQuantity(token string) int {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return 0
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n
	}
	if n, ok := wordValues[token]; ok {
		return n
	}
	return 0
}
