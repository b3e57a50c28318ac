package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mxk/go-pbkdf2/v2/internal/codec"
	"github.com/mxk/go-pbkdf2/v2/internal/config"
	"github.com/mxk/go-pbkdf2/v2/pbkdf2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "development"

// app is the state shared by all subcommands.
type app struct {
	cfgPath string
	verbose string
	cfg     *config.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	root := &cobra.Command{
		Use:   "pbkdf2",
		Short: "Derive keys from passwords with PBKDF2",
		Long: `pbkdf2 derives symmetric keys of any length from a password and salt
using PBKDF2 (RFC 8018) over a selectable pseudorandom function.

The password is read from the environment variable named by --password-env,
from the terminal without echo, or from the first line of standard input.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML file with default parameters (or $"+config.EnvPath+")")
	root.PersistentFlags().StringVar(&a.verbose, "verbose", "warn", "Log verbosity [debug|info|warn|error|off]")

	root.AddCommand(
		a.deriveCmd(),
		a.prfsCmd(),
		a.calibrateCmd(),
		a.searchCmd(),
		versionCmd(),
	)
	return root
}

// setup configures logging and loads the configuration file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	log, err := newLogger(cmd.ErrOrStderr(), a.verbose)
	if err != nil {
		return err
	}
	a.log = log
	if a.cfg, err = config.Load(a.cfgPath); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.log.Debug("configuration loaded", "path", a.cfgPath, "prf", a.cfg.PRF,
		"iterations", a.cfg.Iterations, "key_length", a.cfg.KeyLength)
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "off":
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid verbosity %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// params are the derivation parameters after flags are applied over the
// configuration.
type params struct {
	prf        pbkdf2.PRF
	iterations int
	keyLength  int
	saltEnc    codec.Encoding
	output     codec.Encoding
	workers    int
}

// paramFlags holds the raw values of the shared derivation flags.
type paramFlags struct {
	prf        string
	iterations int
	keyLength  int
	saltEnc    string
	output     string
	workers    int
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	d := config.Default()
	fs.StringVar(&f.prf, "prf", d.PRF, "Pseudorandom function (see 'pbkdf2 prfs')")
	fs.IntVarP(&f.iterations, "iterations", "c", d.Iterations, "Iteration count")
	fs.IntVarP(&f.keyLength, "length", "l", d.KeyLength, "Derived key length in bytes")
	fs.StringVar(&f.saltEnc, "salt-encoding", d.SaltEncoding, "Salt encoding ["+strings.Join(codec.Names(), "|")+"]")
	fs.StringVarP(&f.output, "output", "o", d.Output, "Key encoding ["+strings.Join(codec.Names(), "|")+"]")
	fs.IntVarP(&f.workers, "workers", "w", d.Workers, "Blocks derived in parallel (0 = GOMAXPROCS)")
}

// resolve applies explicitly set flags over the loaded configuration.
func (f *paramFlags) resolve(fs *pflag.FlagSet, cfg *config.Config) (*params, error) {
	c := *cfg
	if fs.Changed("prf") {
		c.PRF = f.prf
	}
	if fs.Changed("iterations") {
		c.Iterations = f.iterations
	}
	if fs.Changed("length") {
		c.KeyLength = f.keyLength
	}
	if fs.Changed("salt-encoding") {
		c.SaltEncoding = f.saltEnc
	}
	if fs.Changed("output") {
		c.Output = f.output
	}
	if fs.Changed("workers") {
		c.Workers = f.workers
	}
	prf, err := pbkdf2.LookupPRF(c.PRF)
	if err != nil {
		return nil, err
	}
	p := &params{prf: prf, iterations: c.Iterations, keyLength: c.KeyLength, workers: c.Workers}
	if p.saltEnc, err = codec.Parse(c.SaltEncoding); err != nil {
		return nil, err
	}
	if p.output, err = codec.Parse(c.Output); err != nil {
		return nil, err
	}
	return p, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Shows build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pbkdf2 %s\n", version)
		},
	}
}
