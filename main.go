/* main.go
 * The "main" method for running the site tooling. For details see `readme.md`
 * Usage: go run main.go -task="<task>"
 * Tasks: generate (default), serve, blogger-sync, blogger-token
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"footybite/blogger"
	"footybite/site"
	"footybite/site/config"
	"footybite/web"

	"github.com/sirupsen/logrus"
)

func main() {
	taskPtr := flag.String("task", "generate", "Task to run: generate, serve, blogger-sync or blogger-token")
	verbosePtr := flag.String("verbose", "false", "Enable debug logging: takes true or false as argument")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose, err := convertStrToBool(*verbosePtr); err != nil {
		log.Fatal("Invalid \"verbose\" flag. Should be true or false")
	} else if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	task, err := parseTask(*taskPtr)
	if err != nil {
		log.Fatalf("invalid task %q: use generate, serve, blogger-sync or blogger-token", *taskPtr)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch task {
	case taskGenerate:
		runGenerate(ctx, cfg, log)
	case taskServe:
		runServe(cfg, log)
	case taskBloggerSync:
		runBloggerSync(ctx, cfg, log)
	case taskBloggerToken:
		runBloggerToken(ctx, cfg, log)
	}
}

func runGenerate(ctx context.Context, cfg *config.Config, log *logrus.Logger) {
	gen, err := site.NewGenerator(cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize generator: %v", err)
	}
	if err := gen.Generate(ctx); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
}

func runServe(cfg *config.Config, log *logrus.Logger) {
	gen, err := site.NewGenerator(cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize generator: %v", err)
	}
	if err := web.Start(web.Config{
		Addr:      cfg.Serve.Addr,
		Dist:      cfg.Site.OutputDir,
		Generator: gen,
		Log:       log,
	}); err != nil {
		log.Fatalf("preview server stopped: %v", err)
	}
}

func runBloggerSync(ctx context.Context, cfg *config.Config, log *logrus.Logger) {
	creds := blogger.Credentials{
		ClientID:     cfg.Blogger.ClientID,
		ClientSecret: cfg.Blogger.ClientSecret,
		RefreshToken: cfg.Blogger.RefreshToken,
		BlogID:       cfg.Blogger.BlogID,
	}
	if err := creds.Validate(); err != nil {
		log.Fatalf("incomplete blogger credentials: %v", err)
	}

	gen, err := site.NewGenerator(cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize generator: %v", err)
	}
	posts, err := gen.BloggerPosts(ctx)
	if err != nil {
		log.Fatalf("failed to build posts: %v", err)
	}

	// the mongo backed post registry is optional
	var registry *blogger.Registry
	if cfg.Blogger.MongoURI != "" {
		registry, err = blogger.NewRegistry(ctx, cfg.Blogger.Database, cfg.Blogger.MongoURI)
		if err != nil {
			log.Fatalf("failed to connect to post registry: %v", err)
		}
		defer func() {
			if err := registry.Close(context.TODO()); err != nil {
				log.WithError(err).Warn("failed to close post registry")
			}
		}()
	}

	syncer := blogger.NewSyncer(blogger.NewClient(creds, log), registry, log)
	stats, err := syncer.Sync(ctx, posts)
	if err != nil {
		log.Fatalf("sync failed: %v", err)
	}
	if stats.Errors > 0 {
		log.Warnf("sync finished with %d errors", stats.Errors)
	}
}

func runBloggerToken(ctx context.Context, cfg *config.Config, log *logrus.Logger) {
	setup := &blogger.TokenSetup{
		ClientID:     cfg.Blogger.ClientID,
		ClientSecret: cfg.Blogger.ClientSecret,
		In:           os.Stdin,
		Out:          os.Stdout,
	}
	if _, err := setup.Run(ctx); err != nil {
		log.Fatalf("token setup failed: %v", err)
	}
}
