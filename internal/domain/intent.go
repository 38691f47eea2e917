package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentAddItem
	IntentRemoveItem
	IntentSetQuantity
	IntentApplyRecipe
	IntentShowCart
	IntentPlaceOrder
	IntentListRecipes
	IntentShowCatalog
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentAddItem:
		return "add_item"
	case IntentRemoveItem:
		return "remove_item"
	case IntentSetQuantity:
		return "set_quantity"
	case IntentApplyRecipe:
		return "apply_recipe"
	case IntentShowCart:
		return "show_cart"
	case IntentPlaceOrder:
		return "place_order"
	case IntentListRecipes:
		return "list_recipes"
	case IntentShowCatalog:
		return "show_catalog"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action, with arguments already
// extracted. Item carries an item or meal name depending on the type;
// Quantity is zero when the action has no quantity argument.
type Intent struct {
	Type     IntentType
	Item     string
	Quantity int
	Raw      string // the original utterance, kept for clarifications
}

// intentNames maps snake_case names to IntentType values.
var intentNames = map[string]IntentType{
	"add_item":     IntentAddItem,
	"remove_item":  IntentRemoveItem,
	"set_quantity": IntentSetQuantity,
	"apply_recipe": IntentApplyRecipe,
	"show_cart":    IntentShowCart,
	"place_order":  IntentPlaceOrder,
	"list_recipes": IntentListRecipes,
	"show_catalog": IntentShowCatalog,
	"help":         IntentHelp,
	"quit":         IntentQuit,
	"unknown":      IntentUnknown,
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	if t, ok := intentNames[name]; ok {
		return t
	}
	return IntentUnknown
}
