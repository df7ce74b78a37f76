package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
	"github.com/mpn-kit/mpn-go/pkg/engine"
	"github.com/mpn-kit/mpn-go/pkg/trace"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	Catalogs []string `mapstructure:"catalogs"`
	Builtin  bool     `mapstructure:"builtin"`
	Workers  int      `mapstructure:"workers"`

	Trace struct {
		File string `mapstructure:"file"`
	} `mapstructure:"trace"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Cache struct {
		Enabled bool          `mapstructure:"enabled"`
		TTL     time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
}

// app carries the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "mpnctl",
		Short:         "Classify part numbers and check substitutes",
		Long:          `mpnctl classifies manufacturer part numbers against vendor rule catalogs and decides whether one part may replace another.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	defaults := engine.DefaultConfig()
	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./mpnctl.yaml or ~/.config/mpnctl/mpnctl.yaml)")
	pf.StringSlice("catalog", nil, "vendor catalog file or directory (repeatable)")
	pf.Bool("builtin", true, "include the built-in vendor catalog")
	pf.String("trace-file", "", "append decision trace events to this file")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.Bool("cache", false, "cache classifications")
	pf.Duration("cache-ttl", defaults.CacheTTL, "classification cache TTL")
	pf.Int("workers", defaults.Workers, "parallel workers for batch commands")

	_ = a.v.BindPFlag("catalogs", pf.Lookup("catalog"))
	_ = a.v.BindPFlag("builtin", pf.Lookup("builtin"))
	_ = a.v.BindPFlag("trace.file", pf.Lookup("trace-file"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("cache.enabled", pf.Lookup("cache"))
	_ = a.v.BindPFlag("cache.ttl", pf.Lookup("cache-ttl"))
	_ = a.v.BindPFlag("workers", pf.Lookup("workers"))

	root.AddCommand(
		newClassifyCommand(a),
		newCompareCommand(a),
		newRankCommand(a),
		newExtractCommand(a, "series", "Print the series code of part numbers", (*engine.Engine).ExtractSeries),
		newExtractCommand(a, "package", "Print the package designator of part numbers", (*engine.Engine).ExtractPackage),
		newBatchCommand(a),
		newLintCommand(a),
		newCatalogCommand(a),
		newShellCommand(a),
		newLogCommand(a),
	)
	return root
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("MPNCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		// Config lookup order:
		// 1. ./mpnctl.yaml
		// 2. ~/.config/mpnctl/mpnctl.yaml
		a.v.SetConfigName("mpnctl")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "mpnctl"))
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func (a *app) settings() (settings, error) {
	var s settings
	if err := a.v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding config: %w", err)
	}
	return s, nil
}

func (a *app) logger(s settings) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", s.Log.Level)
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})), nil
}

// vendors returns the configured vendor definitions.
func (a *app) vendors(s settings) ([]*catalog.Vendor, error) {
	var vendors []*catalog.Vendor
	if s.Builtin {
		builtin, err := catalog.BuiltinVendors()
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, builtin...)
	}
	if len(s.Catalogs) > 0 {
		extra, err := catalog.LoadFiles(s.Catalogs...)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, extra...)
	}
	if len(vendors) == 0 {
		return nil, errors.New("no catalogs: pass --catalog or enable --builtin")
	}
	return vendors, nil
}

func (a *app) catalog(s settings) (*catalog.Catalog, error) {
	if s.Builtin && len(s.Catalogs) == 0 {
		return catalog.Default()
	}
	vendors, err := a.vendors(s)
	if err != nil {
		return nil, err
	}
	return catalog.Build(vendors...)
}

// session is a configured engine plus the resources it holds.
type session struct {
	*engine.Engine
	closers []io.Closer
}

func (s *session) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// open builds an engine from the configuration. Extra tracers receive every
// event in addition to the configured trace file.
func (a *app) open(extra ...trace.Logger) (*session, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}
	logger, err := a.logger(s)
	if err != nil {
		return nil, err
	}
	cat, err := a.catalog(s)
	if err != nil {
		return nil, err
	}

	sess := &session{}
	tracers := []trace.Logger{trace.NewSlogAdapter(logger)}
	if s.Trace.File != "" {
		fl, err := trace.NewFileLogger(s.Trace.File)
		if err != nil {
			return nil, err
		}
		sess.closers = append(sess.closers, fl)
		tracers = append(tracers, fl)
	}
	tracers = append(tracers, extra...)

	cfg := engine.DefaultConfig()
	cfg.Logger = logger
	cfg.Tracer = trace.NewMultiLogger(tracers...)
	cfg.Cache = s.Cache.Enabled
	if s.Cache.TTL > 0 {
		cfg.CacheTTL = s.Cache.TTL
	}
	cfg.Workers = s.Workers

	eng, err := engine.New(cat, cfg)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.Engine = eng
	return sess, nil
}
