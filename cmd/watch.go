package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/alerts"
	"github.com/calab/jobscout/internal/dedup"
	"github.com/calab/jobscout/internal/jobsearch"
	"github.com/calab/jobscout/internal/logger"
	"github.com/calab/jobscout/internal/store"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically re-run the search for a saved profile and print fresh openings",
	Run: func(cmd *cobra.Command, _ []string) {
		watch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Int64P("user", "u", 1, "user id owning the profile on this machine")
	watchCmd.Flags().StringP("location", "l", "", "location to search in (required)")
	watchCmd.Flags().StringP("every", "e", "6h", "interval between search cycles")

	watchCmd.MarkFlagRequired("location")
}

// watch runs recurring searches until interrupted. The profile must already
// exist: run the interactive chat first to create one.
func watch(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	db, err := store.Open(config.Database, logger)
	if err != nil {
		logger.Fatal("opening the profile database", zap.Error(err), zap.String("database", config.Database))
	}
	defer db.Close()

	userID, _ := cmd.Flags().GetInt64("user")
	location, _ := cmd.Flags().GetString("location")
	every, _ := cmd.Flags().GetString("every")

	watcher := alerts.New(db, newSearcher(config, logger), dedup.NewFilter(db, logger), printListings, alerts.Config{
		UserID:   userID,
		Location: location,
		Every:    every,
		Limit:    resultLimit(config),
	}, logger)

	if err := watcher.Start(ctx); err != nil {
		logger.Fatal("starting the watch", zap.Error(err))
	}

	<-ctx.Done()
	watcher.Stop()
	logger.Info("watch interrupted, shutting down")
}

func printListings(userID int64, listings []jobsearch.Listing) {
	fmt.Printf("Fresh openings for user %d:\n", userID)
	for i, l := range listings {
		fmt.Printf("%d. %s\n", i+1, formatListing(l))
	}
}
