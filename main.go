/* main.go
 * The "main" method for running the bot. Configuration is read from .env and the environment, see config/config.go
 * Usage: go run . -test=false -serve -results=data/sweet_sixteen.xml -open-depth=3
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bracket-bot/api/api"
	"bracket-bot/api/docstore"
	"bracket-bot/api/shared"
	"bracket-bot/bot"
	"bracket-bot/config"
	"bracket-bot/web"
)

func main() {
	//Flags
	envPtr := flag.String("env", ".env", "Path of the .env file to load")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	servePtr := flag.Bool("serve", false, "Start the HTTP server for Liquipedia webhooks and pool requests")
	resultsPtr := flag.String("results", "", "Load the results bracket from a document name or .xml file before starting")
	openDepthPtr := flag.Int("open-depth", -1, "Deepest depth of the results document with undecided games, -1 when finished")
	exportPtr := flag.Bool("export", false, "Export every entry to the document store and exit")
	flag.Parse()

	cfg, err := config.Load(*envPtr)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := shared.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	useBeta, err := convertStrToBool(*testPtr)
	if err != nil {
		logger.Fatalw("invalid \"test\" flag, should be true or false", "value", *testPtr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiPtr, err := api.NewAPI(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to initialize API", "error", err)
	}
	defer func() {
		if err := apiPtr.Close(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from the database", "error", err)
		}
	}()

	if *resultsPtr != "" {
		if err := loadResults(ctx, apiPtr, *resultsPtr, *openDepthPtr); err != nil {
			logger.Fatalw("failed to load results", "results", *resultsPtr, "error", err)
		}
	}

	if *exportPtr {
		n, err := apiPtr.ExportEntries(ctx)
		if err != nil {
			logger.Fatalw("failed to export entries", "error", err)
		}
		logger.Infow("exported entries", "count", n)
		return
	}

	if err := run(ctx, cfg, apiPtr, logger, useBeta, *servePtr); err != nil {
		logger.Errorw("bracket bot stopped with an error", "error", err)
	}
}

// loadResults loads a results document, from a file on disk or the configured document store
func loadResults(ctx context.Context, apiPtr *api.API, arg string, openDepth int) error {
	dir, name := documentSource(arg)
	if dir != "" {
		docs := apiPtr.Docs
		apiPtr.Docs = docstore.NewFileStore(dir)
		defer func() { apiPtr.Docs = docs }()
	}
	if _, err := apiPtr.LoadResults(ctx, name, openDepth); err != nil {
		return err
	}
	_, err := apiPtr.GenerateLeaderboard(ctx)
	return err
}

// run starts the bot and, if requested, the HTTP server, until ctx is cancelled or either fails
func run(ctx context.Context, cfg *config.Config, apiPtr *api.API, logger *zap.SugaredLogger, useBeta bool, serve bool) error {
	g, ctx := errgroup.WithContext(ctx)

	if serve {
		g.Go(func() error {
			return web.Start(ctx, web.Config{
				Addr: cfg.HTTPAddr,
				API:  apiPtr,
				Log:  logger,
				Wiki: cfg.LiquipediaWiki,
				Page: cfg.LiquipediaPage,
			})
		})
	}

	token := cfg.DiscordToken(useBeta)
	switch {
	case token != "":
		b, err := bot.NewBot(token, apiPtr, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return b.Run(ctx) })
	case serve:
		logger.Warnw("no discord token configured, running the HTTP server only", "beta", useBeta)
	default:
		return fmt.Errorf("no discord token configured and -serve not set")
	}

	return g.Wait()
}
