package main

import (
	_ "embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/tomz197/fireworks/internal/config"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	SSHHost string
	SSHPort string
}

func main() {
	configFile := pflag.StringP("config", "c", "", "optional config file (yaml, toml or json)")
	pflag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		config.NewLogger("info", "web").Fatal("load settings", "err", err)
	}
	logger := config.NewLogger(settings.LogLevel, "web")

	data := pageData{SSHHost: settings.DisplayHost, SSHPort: settings.SSHPort}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting web server", "url", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}
