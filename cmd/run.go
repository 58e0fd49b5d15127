package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/ai/gemini"
	"github.com/calab/jobscout/internal/conversation"
	"github.com/calab/jobscout/internal/dedup"
	"github.com/calab/jobscout/internal/extract"
	"github.com/calab/jobscout/internal/filtering"
	"github.com/calab/jobscout/internal/jobsearch"
	"github.com/calab/jobscout/internal/logger"
	"github.com/calab/jobscout/internal/secrets"
	"github.com/calab/jobscout/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive job search conversation",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int64P("user", "u", 1, "user id owning the profile on this machine")
}

// run is the interactive chat command. It reads lines from stdin and renders
// the machine's effects on stdout.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	db, err := store.Open(config.Database, logger)
	if err != nil {
		logger.Fatal("opening the profile database", zap.Error(err), zap.String("database", config.Database))
	}
	defer db.Close()

	analyzer, err := newAnalyzer(ctx, config.Gemini, logger)
	if err != nil {
		logger.Fatal(
			"building the resume analyzer",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the 'gemini.api-key-file' key in the configuration file"),
		)
	}

	machine := conversation.NewMachine(conversation.Deps{
		Store:       db,
		Extractor:   extract.NewPDF(logger),
		Analyzer:    analyzer,
		Searcher:    newSearcher(config, logger),
		Deduper:     dedup.NewFilter(db, logger),
		ResultLimit: resultLimit(config),
		Logger:      logger,
	})
	manager := conversation.NewManager(machine, logger)

	userID, _ := cmd.Flags().GetInt64("user")

	fmt.Println("jobscout interactive chat. Commands: /start /cv <file> /skip /cancel /quit")
	render(manager.Dispatch(ctx, userID, conversation.Start{}), func(ev conversation.Event) []conversation.Effect {
		return manager.Dispatch(ctx, userID, ev)
	})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		ev, quit := parseInput(scanner.Text(), logger)
		if quit {
			return
		}
		if ev == nil {
			continue
		}

		render(manager.Dispatch(ctx, userID, ev), func(next conversation.Event) []conversation.Effect {
			return manager.Dispatch(ctx, userID, next)
		})
	}
}

// parseInput maps one console line to a conversation event. The second return
// value reports an explicit quit.
func parseInput(line string, logger *zap.Logger) (conversation.Event, bool) {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return nil, false
	case line == "/quit", line == "/exit":
		return nil, true
	case line == "/start":
		return conversation.Start{}, false
	case line == "/cancel":
		return conversation.Cancel{}, false
	case line == "/skip":
		return conversation.SkipPhone{}, false
	case strings.HasPrefix(line, "/cv "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/cv "))
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("reading resume file", zap.String("path", path), zap.Error(err))
			fmt.Printf("Could not read %s\n", path)
			return nil, false
		}
		return conversation.DocumentReceived{Data: data}, false
	default:
		return conversation.TextMessage{Text: line}, false
	}
}

// render prints the effects. An AskAction effect opens a select prompt and
// feeds the chosen action back through dispatch.
func render(effects []conversation.Effect, dispatch func(conversation.Event) []conversation.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case conversation.Reply:
			fmt.Println(e.Text)

		case conversation.ShowListings:
			fmt.Println(e.Intro)
			for i, l := range e.Listings {
				fmt.Printf("%d. %s\n", i+1, formatListing(l))
			}

		case conversation.AskAction:
			labels := make([]string, 0, len(e.Options))
			for _, opt := range e.Options {
				labels = append(labels, actionLabel(opt))
			}

			prompt := promptui.Select{Label: e.Question, Items: labels}
			idx, _, err := prompt.Run()
			if err != nil {
				render(dispatch(conversation.Cancel{}), dispatch)
				return
			}

			render(dispatch(conversation.ActionChosen{Action: e.Options[idx]}), dispatch)
		}
	}
}

func formatListing(l jobsearch.Listing) string {
	parts := []string{l.Title}
	if l.Company != "" {
		parts = append(parts, l.Company)
	}
	if l.Location != "" {
		parts = append(parts, l.Location)
	}
	line := strings.Join(parts, " / ")
	if l.Link != "" {
		line += "\n   " + l.Link
	}
	return line
}

func actionLabel(a conversation.Action) string {
	switch a {
	case conversation.ActionSearch:
		return "Search with my saved profile"
	case conversation.ActionNewDocument:
		return "Send a new resume"
	default:
		return string(a)
	}
}

// newAnalyzer builds the Gemini-backed resume analyzer from configuration.
func newAnalyzer(ctx context.Context, cfg *GeminiConfig, logger *zap.Logger) (*gemini.Analyzer, error) {
	apiKey, err := secrets.Load("gemini api key", cfg.APIKey, cfg.APIKeyFile)
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewAnalyzer(generator, genLogger, cfg.MaxLogLength), nil
}

// newSearcher assembles the configured job sources into one fan-out searcher
// and wraps it with the configured result filters.
func newSearcher(config *Config, logger *zap.Logger) filtering.Searchable {
	var sources []jobsearch.Source

	li := config.Sources.LinkedIn
	if li == nil {
		li = &LinkedInConfig{}
	}
	if !li.Disabled {
		linkedin := jobsearch.NewLinkedIn(li.BaseURL, logger)
		if li.UserAgent != "" {
			linkedin.UserAgent = li.UserAgent
		} else if config.UserAgent != "" {
			linkedin.UserAgent = config.UserAgent
		}
		sources = append(sources, linkedin)
	}

	if az := config.Sources.Adzuna; az != nil && az.AppID != "" && az.AppKey != "" {
		sources = append(sources, jobsearch.NewAdzuna(az.AppID, az.AppKey, az.Country, logger))
	}

	steps := []filtering.Filter{filtering.NewRequireLink()}
	if config.Exclude != nil && len(config.Exclude.Companies) > 0 {
		steps = append(steps, filtering.NewExcludedCompanies(config.Exclude.Companies))
	}

	return filtering.NewSearcher(jobsearch.NewMulti(logger, sources...), steps, logger)
}

func resultLimit(config *Config) int {
	if config.Results != nil {
		return config.Results.Limit
	}
	return 0
}
