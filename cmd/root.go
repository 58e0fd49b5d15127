package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobscout"
)

type Config struct {
	Database  string         `mapstructure:"database"`
	UserAgent string         `mapstructure:"user-agent"`
	Results   *ResultsConfig `mapstructure:"results"`
	Gemini    *GeminiConfig  `mapstructure:"gemini"`
	Sources   *SourcesConfig `mapstructure:"sources"`
	Exclude   *ExcludeConfig `mapstructure:"exclude"`
}

type ExcludeConfig struct {
	Companies []string `mapstructure:"companies"`
}

type ResultsConfig struct {
	Limit int `mapstructure:"limit"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type SourcesConfig struct {
	LinkedIn *LinkedInConfig `mapstructure:"linkedin"`
	Adzuna   *AdzunaConfig   `mapstructure:"adzuna"`
}

type LinkedInConfig struct {
	Disabled  bool   `mapstructure:"disabled"`
	BaseURL   string `mapstructure:"base-url"`
	UserAgent string `mapstructure:"user-agent"`
}

type AdzunaConfig struct {
	AppID   string `mapstructure:"app-id"`
	AppKey  string `mapstructure:"app-key"`
	Country string `mapstructure:"country"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout is a conversational assistant that reads your resume and finds job openings for you",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env is handy in development; its absence is not an error.
	_ = godotenv.Load()

	if err := viper.BindEnv("database", "JOBSCOUT_DB"); err != nil {
		log.Fatalf("binding JOBSCOUT_DB environment variable: %v", err)
	}
	if err := viper.BindEnv("gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("sources.adzuna.app-id", "ADZUNA_APP_ID"); err != nil {
		log.Fatalf("binding ADZUNA_APP_ID environment variable: %v", err)
	}
	if err := viper.BindEnv("sources.adzuna.app-key", "ADZUNA_APP_KEY"); err != nil {
		log.Fatalf("binding ADZUNA_APP_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The default config file is optional: everything has a flag or an
	// environment variable.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Database == "" {
		config.Database = "jobscout.db"
	}
	if config.Gemini == nil {
		config.Gemini = &GeminiConfig{}
	}
	if config.Sources == nil {
		config.Sources = &SourcesConfig{}
	}

	return config, nil
}
