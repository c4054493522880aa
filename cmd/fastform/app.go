package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-fastform/internal/config"
	"github.com/goliatone/go-fastform/pkg/author"
	"github.com/goliatone/go-fastform/pkg/catalog"
	"github.com/goliatone/go-fastform/pkg/forms"
)

// app carries the state shared by every subcommand: the resolved
// configuration, the logger and the prompt driver used by `new`.
type app struct {
	cfg        config.Config
	configFile string
	logger     *zap.Logger
	driver     author.PromptDriver
}

func newApp(driver author.PromptDriver) *app {
	if driver == nil {
		driver = author.NewSurveyDriver()
	}
	return &app{driver: driver, logger: zap.NewNop()}
}

func (a *app) root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fastform",
		Short:         "Declare, check and export FastForm form schemas",
		Long:          "fastform serves FastForm form schemas (render records and validation rules) from built-in providers and YAML/JSON catalogs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags(), a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return a.initLogger()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	defaults := config.Defaults()
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./.fastform.yaml)")
	flags.String("catalog", defaults.Catalog, "directory of YAML/JSON catalog files")
	flags.StringP("output", "o", defaults.Output, "write output to file instead of stdout")
	flags.Bool("debug", defaults.Debug, "enable debug logging")

	cmd.AddCommand(
		a.schemaCmd(),
		a.checkCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.newCmd(),
	)
	return cmd
}

func (a *app) initLogger() error {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if a.cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// registry returns the built-in providers plus the configured catalog.
func (a *app) registry() (*forms.Registry, error) {
	reg := forms.NewRegistry()
	if a.cfg.Catalog == "" {
		return reg, nil
	}
	cat, err := a.loadCatalog(a.cfg.Catalog)
	if err != nil {
		return nil, err
	}
	if err := cat.Register(reg); err != nil {
		return nil, err
	}
	a.logger.Debug("registry ready", zap.Strings("forms", reg.Names()))
	return reg, nil
}

func (a *app) loadCatalog(dir string) (*catalog.Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog: %s is not a directory", dir)
	}
	return catalog.LoadFS(os.DirFS(dir), catalog.WithLogger(a.logger.Named("catalog")))
}

// writeOutput sends render's output to --output or the command's stdout.
func (a *app) writeOutput(cmd *cobra.Command, render func(io.Writer) error) error {
	if a.cfg.Output == "" {
		return render(cmd.OutOrStdout())
	}
	file, err := os.Create(a.cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	a.logger.Info("output written", zap.String("path", a.cfg.Output))
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", a.cfg.Output)
	return nil
}
