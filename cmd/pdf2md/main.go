package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thywilljoshua/pdf2md/internal/backends"
	"github.com/thywilljoshua/pdf2md/internal/config"
	"github.com/thywilljoshua/pdf2md/internal/convert"
	"github.com/thywilljoshua/pdf2md/internal/logging"
	"github.com/thywilljoshua/pdf2md/internal/registry"
)

// app is what every subcommand shares once the root has loaded configuration.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	registry *registry.Registry
}

func (a *app) pipeline() *convert.Pipeline {
	return convert.New(a.registry, a.cfg.ImagesDir, a.cfg.Timeout, a.log)
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "pdf2md",
		Short:         "Convert PDF documents into Markdown with pluggable extraction back-ends",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().String("log-file", "", "log file path (default from PDF2MD_LOG_FILE)")
	root.PersistentFlags().Bool("dev", false, "human-readable debug logging")

	root.AddCommand(serveCmd(a), convertCmd(a), modelsCmd(a), ocrImagesCmd(a))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("log-file"); f != nil && f.Changed {
		cfg.LogFile = f.Value.String()
	}
	if dev, err := cmd.Flags().GetBool("dev"); err == nil && dev {
		cfg.Development = true
	}
	a.cfg = cfg
	a.log = logging.New(logging.Options{Development: cfg.Development, FilePath: cfg.LogFile})

	a.registry = registry.New()
	return backends.Register(a.registry, backends.Options{Config: cfg, Log: a.log})
}
