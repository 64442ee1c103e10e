package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/apis"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/config"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/github"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/identity"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/ingest"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/npm"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/server"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	cfg := config.Config()

	store, aerr := db.Open(cfg.DBFile)
	if aerr != nil {
		slog.Error().Err(aerr).Str("db_file", cfg.DBFile).Msg("unable to open catalog store")
		os.Exit(1)
	}
	defer store.Close()

	ghFactory := func(owner, repo string) *github.Client {
		return github.New(owner, repo)
	}
	assembler := ingest.NewAssembler(ghFactory(cfg.GithubOwner, cfg.GithubRepo), cfg.GithubBranch)
	ingestor := ingest.NewIngestor(store, assembler)
	npmClient := npm.New()
	verifier := identity.NewCeramicVerifier(cfg.CeramicURL)

	api := apis.New(store, npmClient, ingestor, ghFactory, verifier)
	s, err := server.CreateNewServer(api)
	if err != nil {
		slog.Error().Err(err).Msg("unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()

	addr := ":" + cfg.ServerPort
	slog.Info().Str("addr", addr).Msg("catalog server listening")
	if cfg.TLSKeyFile != "" && cfg.TLSCertFile != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, s.Router)
	} else {
		err = http.ListenAndServe(addr, s.Router)
	}
	if err != nil {
		slog.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
