package server

import (
	"flag"
	"net/http"

	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagLog     = "log_level"
	flagMetrics = "metrics"
	flagDB      = "db"
)

// AppOptions is everything an application generator needs to build the
// application.
type AppOptions struct {
	Home   string
	DBPath string
	Logger log.Logger
	Debug  bool
	// Metrics is where the application registers its collectors.
	Metrics prometheus.Registerer
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(AppOptions) (abci.Application, error)

// parseFlags updates cfg with the command line flags.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&cfg.Bind, flagBind, cfg.Bind, "address server listens on")
	fs.BoolVar(&cfg.Debug, flagDebug, cfg.Debug, "call stack returned on error")
	fs.StringVar(&cfg.LogLevel, flagLog, cfg.LogLevel, "log level: debug, info, error or none")
	fs.StringVar(&cfg.MetricsAddr, flagMetrics, cfg.MetricsAddr, "prometheus endpoint address, disabled if empty")
	fs.StringVar(&cfg.DBPath, flagDB, cfg.DBPath, "state database directory, in memory if empty")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// StartCmd initializes the application, and runs the ABCI server until the
// process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := LoadConfig(home)
	if err != nil {
		return err
	}
	if err := parseFlags(&cfg, args); err != nil {
		return err
	}

	level, err := log.AllowLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, level)

	reg := prometheus.NewRegistry()
	app, err := gen(AppOptions{
		Home:    home,
		DBPath:  cfg.ResolveDBPath(home),
		Logger:  logger,
		Debug:   cfg.Debug,
		Metrics: reg,
	})
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr, reg, logger)
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		// Cleanup
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})
	select {}
}

// serveMetrics exposes the collectors of given registry over HTTP.
func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("Starting metrics endpoint", "addr", addr)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics endpoint", "err", err)
		}
	}()
}
