package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/pipocahq/pipoca/internal/catalog"
	"github.com/pipocahq/pipoca/internal/collection"
	"github.com/pipocahq/pipoca/internal/config"
	"github.com/pipocahq/pipoca/internal/domain"
	"github.com/pipocahq/pipoca/internal/log"
	"github.com/pipocahq/pipoca/internal/metadata"
	"github.com/pipocahq/pipoca/internal/storage"
	"github.com/pipocahq/pipoca/internal/tui"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.BoolVar(showVersion, "v", false, "print version and exit (shorthand)")
	noPersist := flag.Bool("no-persist", false, "keep collections in memory only")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pipoca %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting pipoca", "version", version)

	var provider domain.StorageProvider
	if *noPersist {
		provider = storage.NewMemoryProvider()
		logger.Info("using in-memory storage")
	} else {
		bolt, err := storage.NewBoltProvider(cfg.Storage.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Erro ao abrir armazenamento: %v\n", err)
			os.Exit(1)
		}
		provider = bolt
	}
	defer provider.Close()

	store := collection.NewStore(provider, logger)
	if err := store.EnsureDefaults(context.Background()); err != nil {
		logger.Error("failed to seed default playlists", "error", err)
	}

	if !cfg.HasAPIKey() {
		promptAPIKey(cfg, logger)
	}

	var client *metadata.Client
	if cfg.HasAPIKey() {
		client = metadata.NewClient(cfg.TMDB.APIKey, cfg.TMDB.Language, logger)
	} else {
		logger.Info("no TMDB API key configured, using bundled catalog")
	}
	svc := catalog.NewService(client, logger)

	model := tui.New(store, svc, logger, cfg.UI.DefaultTab, cfg.UI.ReviewSort)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program error", "error", err)
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

// promptAPIKey asks for a TMDB API key on first run. Input is hidden; an
// empty answer keeps the bundled mock catalog.
func promptAPIKey(cfg *config.Config, logger *slog.Logger) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	fmt.Println("Nenhuma chave TMDB configurada.")
	fmt.Print("Chave da API TMDB (enter para usar o catálogo local): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		logger.Warn("api key prompt failed", "error", err)
		return
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return
	}

	cfg.TMDB.APIKey = key
	if err := config.SaveAPIKey(key); err != nil {
		logger.Warn("failed to persist api key", "error", err)
	}
}
