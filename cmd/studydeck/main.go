package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/studybuddy/studydeck/internal/config"
	"github.com/studybuddy/studydeck/internal/domain"
	"github.com/studybuddy/studydeck/internal/export"
	"github.com/studybuddy/studydeck/internal/importer"
	"github.com/studybuddy/studydeck/internal/sm2"
	"github.com/studybuddy/studydeck/internal/storage"
	"github.com/studybuddy/studydeck/internal/study"
)

const usage = `Usage: studydeck [flags] <command> [args]

Commands:
  list                       List all decks
  dashboard                  Print the study dashboard
  due                        List due cards (--deck to scope to one deck)
  create <name>              Create a deck (--source, --cards file.json)
  review <deck> <card> <n>   Review a card with rating 0=again 1=hard 2=good 3=easy
  delete <deck>              Delete a deck and its index entry
  export <deck>              Export a deck (--template flashcards|quiz)
  import <path|git-url>      Create a deck from Q:/A: markdown files (--name)
  reconcile                  Check index/deck-record consistency (--rebuild to repair)
`

func main() {
	f := pflag.NewFlagSet("studydeck", pflag.ExitOnError)
	f.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		f.PrintDefaults()
	}

	configFile := f.String("config", "", "Path to a YAML config file")
	f.String("data-dir", "", "Data directory for the file store")
	f.String("store", "", "Storage backend: file or sqlite")
	f.String("db-path", "", "SQLite database path (store=sqlite)")
	f.String("cache-dir", "", "Clone cache for git card sources")
	f.String("log-level", "", "Log level: debug, info, warn or error")

	deckFlag := f.String("deck", "", "Deck ID to scope 'due' to")
	sourceFlag := f.String("source", "manual", "Provenance tag for 'create'")
	cardsFlag := f.String("cards", "", "JSON file of {front, back} pairs for 'create'")
	templateFlag := f.String("template", export.TemplateFlashcards, "Export template: flashcards or quiz")
	nameFlag := f.String("name", "", "Deck name for 'import'")
	rebuildFlag := f.Bool("rebuild", false, "Rebuild the index during 'reconcile'")

	if err := f.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "studydeck: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := study.New(store, logger)

	args := f.Args()
	if len(args) == 0 {
		f.Usage()
		os.Exit(2)
	}

	if err := run(args, cfg, store, svc, logger, cmdFlags{
		deck:     *deckFlag,
		source:   *sourceFlag,
		cards:    *cardsFlag,
		template: *templateFlag,
		name:     *nameFlag,
		rebuild:  *rebuildFlag,
	}); err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

type cmdFlags struct {
	deck     string
	source   string
	cards    string
	template string
	name     string
	rebuild  bool
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Store == "sqlite" {
		return storage.OpenSQLite(cfg.DBPath)
	}
	return storage.NewFileStore(cfg.DataDir), nil
}

func run(args []string, cfg *config.Config, store storage.Store, svc *study.Service, logger *slog.Logger, flags cmdFlags) error {
	switch cmd := args[0]; cmd {
	case "list":
		decks, err := svc.ListDecks()
		if err != nil {
			return err
		}
		return printJSON(decks)

	case "dashboard":
		dash, err := svc.Dashboard()
		if err != nil {
			return err
		}
		return printJSON(dash)

	case "due":
		cards, err := svc.DueCards(flags.deck)
		if err != nil {
			return err
		}
		return printJSON(cards)

	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: create <name>")
		}
		content, err := readCards(flags.cards)
		if err != nil {
			return err
		}
		deck, err := svc.CreateDeck(args[1], flags.source, content)
		if err != nil {
			return err
		}
		return printJSON(deck)

	case "review":
		if len(args) < 4 {
			return fmt.Errorf("usage: review <deck> <card> <rating>")
		}
		rating, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("rating must be a number 0-3: %w", err)
		}
		card, err := svc.ReviewCard(args[1], args[2], sm2.Rating(rating))
		if err != nil {
			return err
		}
		return printJSON(card)

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: delete <deck>")
		}
		return svc.DeleteDeck(args[1])

	case "export":
		if len(args) < 2 {
			return fmt.Errorf("usage: export <deck>")
		}
		deck, err := store.LoadDeck(args[1])
		if err != nil {
			return err
		}
		out, err := export.Render(deck, flags.template)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil

	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: import <path-or-git-url> --name <deck name>")
		}
		if flags.name == "" {
			return fmt.Errorf("import requires --name")
		}
		imp := importer.New(svc, logger, cfg.CacheDir)
		deck, err := imp.Import(args[1], flags.name)
		if err != nil {
			return err
		}
		return printJSON(deck)

	case "reconcile":
		if flags.rebuild {
			idx, err := storage.RebuildIndex(store)
			if err != nil {
				return err
			}
			logger.Info("index rebuilt", "decks", len(idx.Decks))
			return printJSON(idx.Decks)
		}
		report, err := storage.Reconcile(store)
		if err != nil {
			return err
		}
		return printJSON(report)

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// readCards loads a JSON file of {front, back} pairs, or returns no cards
// when no file was given.
func readCards(path string) ([]domain.CardContent, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards file %s: %w", path, err)
	}
	var cards []domain.CardContent
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse cards file %s: %w", path, err)
	}
	return cards, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
