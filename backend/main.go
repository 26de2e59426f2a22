package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"safesurf/backend/global"
	"safesurf/backend/initialize"
)

func main() {
	configPath := flag.String("config", "config/backend.yaml", "Path to backend config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build backend:", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", app.Cfg.HTTP.Host, app.Cfg.HTTP.Port)
	global.Logger.Info().Str("addr", addr).Msg("backend listening")
	if err := http.ListenAndServe(addr, app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server stopped")
		os.Exit(1)
	}
}
