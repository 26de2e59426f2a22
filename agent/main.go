package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"safesurf/agent/internal/activity"
	"safesurf/agent/internal/auth"
	"safesurf/agent/internal/backendapi"
	"safesurf/agent/internal/config"
	"safesurf/agent/internal/db"
	"safesurf/agent/internal/gate"
	"safesurf/agent/internal/logger"
	"safesurf/agent/internal/navigation"
	"safesurf/agent/internal/reputation"
	"safesurf/agent/internal/scanner"
	"safesurf/agent/internal/settings"
	"safesurf/agent/internal/state"
)

func main() {
	var (
		configPath = flag.String("config", "config/agent.yaml", "Path to agent config file")
		username   = flag.String("username", "", "Backend username (omit to reuse a saved token)")
		password   = flag.String("password", "", "Backend password")
	)
	flag.Parse()

	cfg := config.Init(*configPath)
	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}

	if _, err := db.Open(cfg.DBPath); err != nil {
		// The local mirror is an optimization; keep filtering without it.
		logger.Errorf("local store unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		close(stop)
		cancel()
	}()

	api := backendapi.New(config.BackendBaseURL())
	store := settings.NewStore(api, func() config.Retry { return config.Get().Retry })
	store.LoadCached()

	// Authenticate: fresh login when credentials are given, otherwise a
	// saved token. Either way a sign-in failure leaves the agent filtering
	// on the cached policy.
	if *username != "" {
		if _, err := auth.Login(ctx, api, *username, *password); err != nil {
			logger.Errorf("login failed, running on cached policy: %v", err)
		}
	} else if token := auth.LoadToken(); token != "" {
		state.SetToken(token)
	} else {
		logger.Info("no credentials or saved token, running on cached policy")
	}

	go store.Run(ctx, cfg.RefreshInterval, stop)

	if err := config.Watch(*configPath, func(config.AppConfig) {
		if err := store.Refresh(ctx); err != nil {
			logger.Errorf("refresh after config change failed: %v", err)
		}
	}, stop); err != nil {
		logger.Errorf("config watch unavailable: %v", err)
	}

	host := navigation.NewStdioHost(os.Stdin, os.Stdout)
	sc := &scanner.Scanner{
		Classifier: scanner.NewKeywordClassifier(),
		Settings:   store,
		Sink:       host,
	}
	go sc.Run(ctx, host.Mutations())

	g := &gate.Gate{
		Settings:     store,
		Checker:      reputation.NewClient(cfg.SafeBrowsingURL, cfg.SafeBrowsingKey, cfg.ReputationTimeout),
		Navigator:    host,
		Reporter:     activity.NewReporter(api),
		BlockedPage:  cfg.BlockedPageURL,
		CheckTimeout: cfg.ReputationTimeout,
	}

	logger.Info("agent running")
	for {
		select {
		case ev, ok := <-host.Events():
			if !ok {
				logger.Info("navigation stream ended")
				return
			}
			d := g.Handle(ctx, ev)
			if d.Outcome != gate.Allowed {
				logger.Infof("blocked %s: %s", ev.URL, d.Reason)
			}
		case <-stop:
			logger.Info("shutting down")
			return
		}
	}
}
