// FreshCart — a conversational grocery ordering assistant.
//
// Usage:
//
//	freshcart [-catalog data/catalog.json] [-orders data/orders.json] [-verbose]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/freshcart-labs/freshcart/internal/assistant"
	"github.com/freshcart-labs/freshcart/internal/cart"
	"github.com/freshcart-labs/freshcart/internal/catalog"
	"github.com/freshcart-labs/freshcart/internal/conversation"
	"github.com/freshcart-labs/freshcart/internal/display"
	"github.com/freshcart-labs/freshcart/internal/domain"
	"github.com/freshcart-labs/freshcart/internal/gpt"
	"github.com/freshcart-labs/freshcart/internal/logger"
	"github.com/freshcart-labs/freshcart/internal/order"
	"github.com/freshcart-labs/freshcart/internal/recipe"
)

func main() {
	_ = godotenv.Load()

	catalogPath := flag.String("catalog", "data/catalog.json", "path to the product catalog JSON")
	ordersPath := flag.String("orders", "data/orders.json", "path to the order log JSON (created on first order)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".freshcart-logs/freshcart.log", "file to write logs to (use \"stderr\" to log to console)")
	noAI := flag.Bool("no-ai", false, "disable the AI intent classifier even if GPT keys are set")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so
	// third-party libraries don't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the catalog. No catalog means no viable session — this is
	// the one failure allowed to kill the process.
	cat, err := catalog.Load(*catalogPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Wire dependencies.
	recipes := recipe.NewTable(log)
	sessionCart := cart.New(cat, log)
	orders := order.NewFileLog(*ordersPath, log)
	writer := order.NewWriter(orders, cat, log)
	dispatcher := assistant.New(cat, recipes, sessionCart, writer, log)
	parser := conversation.NewKeywordParser(log)

	ui := display.NewUI(sessionCart)
	notifier := conversation.NewCLINotifier(log, ui.Printf)

	// Build the AI intent classifier if GPT credentials are available.
	var agent *gpt.Agent

	gptKey := os.Getenv("GPT_CHAT_KEY")
	gptEndpoint := os.Getenv("GPT_CHAT_ENDPOINT")

	if gptKey != "" && gptEndpoint != "" && !*noAI {
		gptClient := gpt.NewClient(gptEndpoint, gptKey, log)
		agent = gpt.NewAgent(gptClient, log)
		log.Info("AI intent classifier enabled")
	} else if !*noAI {
		log.Info("AI classifier disabled: set GPT_CHAT_KEY and GPT_CHAT_ENDPOINT env vars to enable")
	}

	// Build the CLI app.
	app := &cliApp{
		catalog:    cat,
		recipes:    recipes,
		cart:       sessionCart,
		dispatcher: dispatcher,
		parser:     parser,
		notifier:   notifier,
		agent:      agent,
		log:        log,
		ui:         ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	catalog    *catalog.Catalog
	recipes    domain.RecipeTable
	cart       *cart.Cart
	dispatcher *assistant.Dispatcher
	parser     domain.IntentParser
	notifier   domain.Notifier
	agent      *gpt.Agent // nil when AI is disabled
	log        *logger.Logger
	ui         *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	a.say(ctx, assistant.LineWelcome())
	a.showCatalog()
	a.ui.Println("")

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		// Hand unmatched input to the AI classifier when available.
		if intent.Type == domain.IntentUnknown && a.agent != nil {
			classified, err := a.agent.Classify(ctx, input, a.catalog.Items(), a.recipes.ListKnown(), a.cart.Lines())
			if err != nil {
				a.log.Error("AI classify failed: %v", err)
			} else {
				a.log.Info("classified %q -> %s", input, classified.Type)
				intent = classified
			}
		}

		a.log.Debug("intent: %s (item=%q qty=%d)", intent.Type, intent.Item, intent.Quantity)
		if done := a.handleIntent(ctx, intent); done {
			return
		}
	}
}

// handleIntent executes one turn. Returns true when the session should end.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentQuit:
		a.say(ctx, assistant.LineBye())
		return true
	case domain.IntentShowCart:
		a.showCartRows()
		a.say(ctx, a.dispatcher.Dispatch(ctx, intent))
	case domain.IntentShowCatalog:
		a.showCatalog()
	case domain.IntentListRecipes:
		a.showRecipes()
		a.say(ctx, a.dispatcher.Dispatch(ctx, intent))
	default:
		a.say(ctx, a.dispatcher.Dispatch(ctx, intent))
	}
	return false
}

// say sends a reply through the notifier — printed now, spoken by
// whatever TTS sits behind the Notifier in a voice deployment.
func (a *cliApp) say(ctx context.Context, text string) {
	if err := a.notifier.Notify(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

func (a *cliApp) showCatalog() {
	a.ui.PrintHeading("Today's catalog:")
	for _, it := range a.catalog.Items() {
		a.ui.PrintRow(fmt.Sprintf("  %-16s %6.2f", it.Name, it.Price))
	}
	a.ui.PrintHint("Say 'add 2 milk', 'ingredients for pasta', or 'place order'.")
}

func (a *cliApp) showRecipes() {
	a.ui.PrintHeading("Recipes I know:")
	for _, meal := range a.recipes.ListKnown() {
		lines, err := a.recipes.Lookup(meal)
		if err != nil {
			continue
		}
		parts := make([]string, len(lines))
		for i, rl := range lines {
			parts[i] = fmt.Sprintf("%s x%d", rl.Item, rl.Quantity)
		}
		a.ui.PrintRow(fmt.Sprintf("  %-24s %s", meal, strings.Join(parts, ", ")))
	}
}

func (a *cliApp) showCartRows() {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		return
	}
	a.ui.PrintHeading("Your cart:")
	for _, l := range lines {
		price := 0.0
		if it, ok := a.catalog.Lookup(l.Item); ok {
			price = it.Price * float64(l.Quantity)
		}
		a.ui.PrintRow(fmt.Sprintf("  %-16s x%-3d %6.2f", l.Item, l.Quantity, price))
	}
	a.ui.PrintHint(fmt.Sprintf("  total %.2f", a.cart.Total()))
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Commands:")
	a.ui.PrintRow("  add <n> <item>        Add items to your cart")
	a.ui.PrintRow("  remove <item>         Take an item out of the cart")
	a.ui.PrintRow("  set <item> to <n>     Overwrite an item's quantity")
	a.ui.PrintRow("  ingredients for <x>   Add everything a meal needs")
	a.ui.PrintRow("  cart                  Show what you have so far")
	a.ui.PrintRow("  place order           Save the order and clear the cart")
	a.ui.PrintRow("  catalog               Show what we sell")
	a.ui.PrintRow("  recipes               Show meals I know ingredients for")
	a.ui.PrintRow("  help                  Show this message")
	a.ui.PrintRow("  quit                  Exit")
	a.ui.Println("")
	a.ui.PrintHeading("AI (requires GPT_CHAT_KEY + GPT_CHAT_ENDPOINT):")
	a.ui.PrintRow("  free-form requests like 'throw in a couple of apples'")
}
