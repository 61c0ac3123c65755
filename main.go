package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kanadex/internal/config"
	"kanadex/internal/datastore"
	"kanadex/internal/eventbus"
	"kanadex/internal/filter"
	"kanadex/internal/history"
	"kanadex/internal/logging"
	"kanadex/internal/search"
	"kanadex/internal/ui"
	"kanadex/internal/ui/coordinator"
	"kanadex/internal/ui/render"
)

func main() {
	var (
		dataDir  string
		dbPath   string
		logPath  string
		debugLog bool
	)
	flag.StringVar(&dataDir, "data", "", "directory containing the warehouse CSV exports")
	flag.StringVar(&dataDir, "d", "", "directory containing the warehouse CSV exports (shorthand)")
	flag.StringVar(&dbPath, "db", "", "path to the status history database")
	flag.StringVar(&logPath, "log", "", "log file path, - to disable")
	flag.BoolVar(&debugLog, "debug", false, "enable debug logging")
	flag.Parse()

	if dataDir == "" && flag.NArg() > 0 {
		dataDir = flag.Arg(0)
	}

	logger, closeLog, err := logging.New(logPath, debugLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	bus := eventbus.New(logger)

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		logger.Warn("failed to load config, starting with defaults", zap.Error(err))
		cfg = config.DefaultConfig()
	}

	// Flags win over persisted paths
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		dataDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}
	dataDir, err = filepath.Abs(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error resolving data directory: %v\n", err)
		os.Exit(1)
	}
	cfg.DataDir = dataDir

	if dbPath == "" {
		dbPath = cfg.HistoryPath
	}
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "kanadex.db")
	}
	cfg.HistoryPath = dbPath

	histStore, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history store at %s: %v\n", dbPath, err)
		os.Exit(1)
	}
	defer histStore.Close()

	store := datastore.New(dataDir, bus, histStore, logger)

	searchEngine := search.NewEngine(store, bus, logger)
	filterEngine := filter.NewEngine(bus, searchEngine, store, logger)
	filterEngine.SetPersistFunction(func(fieldID, value string) {
		cfg.LastFacet.FieldID = fieldID
		cfg.LastFacet.Value = value
	})

	card := render.NewCardRenderer(cfg.UISettings.CardPageSize)
	table := render.NewTableRenderer(cfg.UISettings.TablePageSize, bus, logger)
	coord := coordinator.NewCoordinator(bus, searchEngine, filterEngine, card, table, logger)

	uiModel := ui.NewModel(ui.Deps{
		Bus:        bus,
		Config:     cfg,
		CfgService: configSvc,
		Store:      store,
		HistStore:  histStore,
		Search:     searchEngine,
		Filter:     filterEngine,
		Card:       card,
		Table:      table,
		Coord:      coord,
		Log:        logger,
	})

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events into the Bubble Tea loop
	for _, et := range []eventbus.EventType{
		eventbus.EventDataReady,
		eventbus.EventAuditCompleted,
		eventbus.EventError,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) {
			go p.Send(ui.EventMsg{Event: e})
		})
	}

	// Initial load happens off the UI goroutine; the DataReady event
	// brings the results in once parsing finishes.
	go func() {
		if err := store.Load(false); err != nil {
			logger.Error("initial data load failed", zap.Error(err))
			bus.Publish(eventbus.ErrorEvent{Message: "データの読込に失敗しました", Err: err})
		}
	}()

	watcher, err := datastore.Watch(store, logger)
	if err != nil {
		logger.Warn("file watching unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}

	if err := configSvc.Save(cfg); err != nil {
		logger.Error("failed to save config on exit", zap.Error(err))
	}
}
