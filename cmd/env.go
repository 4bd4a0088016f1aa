package cmd

import (
	"fmt"
	"os"

	"github.com/Enhisir/android-manager/internal/adb"
	"github.com/Enhisir/android-manager/internal/config"
	"github.com/Enhisir/android-manager/internal/deploy"
	"github.com/Enhisir/android-manager/internal/history"
	"github.com/Enhisir/android-manager/internal/logging"
)

// env is what a command needs to talk to adb.
type env struct {
	cfg    *config.Config
	log    *logging.Logger
	client *adb.Client
	db     *history.DB
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	client := adb.NewClient(cfg.ADBPath(),
		adb.WithLogger(logger.Logger),
		adb.WithTempDir(cfg.StagingDir()),
	)
	return &env{cfg: cfg, log: logger, client: client}, nil
}

// connect loads the environment and starts the adb server. Commands using it
// run requireDeps first.
func connect() (*env, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, err
	}
	if err := e.client.StartServer(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
	e.log.Close()
}

// serial returns the --serial flag, falling back to the configured default.
func (e *env) serial() string {
	if serialFlag != "" {
		return serialFlag
	}
	return e.cfg.DefaultSerial
}

// deployer returns a Deployer that records to the history database when it
// can be opened.
func (e *env) deployer() *deploy.Deployer {
	d := &deploy.Deployer{ADB: e.client, Log: e.log.Logger}
	if e.db == nil {
		db, err := history.Open(config.ConfigDir())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
			return d
		}
		e.db = db
	}
	d.History = e.db
	return d
}
