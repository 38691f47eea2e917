// Package assistant — lines.go centralises every spoken string.
// Edit this file to change Sam's personality. Keep lines short and
// direct; a TTS engine downstream handles inflection.
package assistant

import (
	"fmt"
	"strings"

	"github.com/freshcart-labs/freshcart/internal/domain"
)

// ── Greeting / Global ────────────────────────────────────────────

func LineWelcome() string {
	return "Hi! Welcome to FreshCart. What would you like to order today?"
}

func LineBye() string {
	return "Thanks for shopping with FreshCart. Bye."
}

func LineUnknown(input string) string {
	if input == "" {
		return "Sorry, I didn't catch that. Try 'add 2 milk' or 'help'."
	}
	return fmt.Sprintf("Sorry, I didn't understand %q. Try 'add 2 milk' or 'help'.", input)
}

// ── Cart mutations ───────────────────────────────────────────────

func LineAdded(item string, quantity, newTotal int) string {
	if newTotal > quantity {
		return fmt.Sprintf("Added %d more %s. You now have %d.", quantity, item, newTotal)
	}
	return fmt.Sprintf("Added %s to your cart.", countNoun(quantity, item))
}

func LineRemoved(item string) string {
	return fmt.Sprintf("Removed %s from your cart.", item)
}

func LineNotInCart(item string) string {
	return fmt.Sprintf("There's no %s in your cart.", item)
}

func LineQuantitySet(item string, quantity int) string {
	return fmt.Sprintf("Set %s to %d.", item, quantity)
}

func LineUnknownItem(item string) string {
	return fmt.Sprintf("Sorry, I don't carry %s.", item)
}

func LineBadQuantity() string {
	return "I need a quantity of at least one for that."
}

// ── Recipes ──────────────────────────────────────────────────────

func LineRecipeApplied(meal string, lines []domain.RecipeLine) string {
	parts := make([]string, len(lines))
	for i, rl := range lines {
		parts[i] = countNoun(rl.Quantity, rl.Item)
	}
	return fmt.Sprintf("For %s I've added %s to your cart.", meal, joinAnd(parts))
}

func LineRecipeNotFound(meal string) string {
	return fmt.Sprintf("I don't know a recipe for %s.", meal)
}

func LineRecipeIngredientMissing(meal, item string) string {
	return fmt.Sprintf("I can't do %s — I don't carry %s. Your cart is unchanged.", meal, item)
}

func LineKnownRecipes(meals []string) string {
	if len(meals) == 0 {
		return "I don't know any recipes yet."
	}
	return "I know the ingredients for " + joinAnd(meals) + "."
}

// ── Cart contents / ordering ─────────────────────────────────────

func LineCartEmpty() string {
	return "Your cart is empty."
}

func LineCartContents(lines []domain.CartLine, total float64) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = countNoun(l.Quantity, l.Item)
	}
	return fmt.Sprintf("You have %s. That's %.2f total.", joinAnd(parts), total)
}

func LineOrderPlaced(ord *domain.Order) string {
	return fmt.Sprintf("Order placed! Your order id is %s and the total is %.2f.", ord.ID, ord.Total)
}

func LineOrderEmptyCart() string {
	return "Your cart is empty — add something before placing an order."
}

func LineOrderFailed() string {
	return "I couldn't save your order just now. Your cart is untouched — please try placing it again."
}

// ── Catalog ──────────────────────────────────────────────────────

func LineCatalog(items []domain.CatalogItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s at %.2f", it.Name, it.Price)
	}
	return "Today we have " + joinAnd(parts) + "."
}

// ── Helpers ──────────────────────────────────────────────────────

// countNoun renders "2 eggs" or "1 milk" — quantity then the catalog
// name as-is. Product names double as their own plural well enough for
// speech.
func countNoun(quantity int, item string) string {
	return fmt.Sprintf("%d %s", quantity, item)
}

// joinAnd joins a list for speech: "a", "a and b", "a, b, and c".
func joinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}
