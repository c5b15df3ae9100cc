package main

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobinette/bookshelf"
	"github.com/bobinette/bookshelf/bleve"
	"github.com/bobinette/bookshelf/bolt"
	"github.com/bobinette/bookshelf/jwt"
	"github.com/bobinette/bookshelf/log"
	"github.com/bobinette/bookshelf/notify"
	"github.com/bobinette/bookshelf/recommend"
	"github.com/bobinette/bookshelf/services"
	"github.com/bobinette/bookshelf/summarize"
)

const resetTokenTTL = 30 * time.Minute

var (
	// flags
	env        string
	configFile string

	// logger
	logger log.Logger

	// drivers
	boltDriver *bolt.Driver

	// repositories
	bookRepository bookshelf.BookRepository
	userRepository bookshelf.UserRepository

	// services
	catalogService *services.CatalogService
	libraryService *services.LibraryService
	userService    *services.UserService

	mailer *notify.Async
)

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
}

var RootCmd = cobra.Command{
	Use:          "bookshelf",
	Short:        "Share and moderate a catalog of e-books",
	Long:         "Share and moderate a catalog of e-books",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.New(env)

		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}

		cfg, err := loadConfiguration(configFile)
		if err != nil {
			logger.Fatal(err)
		}

		// Create stores
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			logger.Fatalf("could not open bolt store %s: %v", cfg.Bolt.Store, err)
		}
		bookRepository = &bolt.BookRepository{Driver: boltDriver}
		userRepository = &bolt.UserRepository{Driver: boltDriver}

		// Create services
		// -- catalog
		var summarizer summarize.Summarizer = summarize.Unavailable{}
		if cfg.Summarizer.Enabled {
			client := &http.Client{Timeout: cfg.Summarizer.Timeout.Duration}
			summarizer = summarize.NewClient(cfg.Summarizer.URL, cfg.Summarizer.Token, client, logger)
		}
		catalogService = services.NewCatalogService(
			bookRepository,
			userRepository,
			summarize.NewService(summarizer, logger),
			logger,
		)

		// -- library
		var similarity recommend.Similarity = recommend.Unavailable{}
		if cfg.Recommend.Enabled {
			analyzer, err := bleve.NewAnalyzer()
			if err != nil {
				logger.Fatal("could not create analyzer:", err)
			}
			similarity = recommend.NewTFIDF(analyzer)
		}
		libraryService = services.NewLibraryService(
			bookRepository,
			userRepository,
			recommend.NewEngine(similarity),
			cfg.Recommend.K,
			logger,
		)

		// -- users
		var notifier notify.Notifier = notify.Log{Logger: logger}
		if cfg.Mail.Enabled {
			notifier = notify.NewSMTP(cfg.Mail.Server, cfg.Mail.Port, cfg.Mail.Email, cfg.Mail.Password, cfg.Mail.From)
		}
		mailer = notify.NewAsync(notifier, logger, time.Minute)
		tokens := jwt.NewEncodeDecoder([]byte(cfg.Reset.Key), resetTokenTTL)
		userService = services.NewUserService(userRepository, tokens, mailer, logger)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		mailer.Wait()
		boltDriver.Close()
	},
}
