package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/chipcut/internal/config"
	"github.com/piwi3910/chipcut/internal/observability"
)

// app carries the state shared by every subcommand of one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand builds a fresh command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "chipcut",
		Short:         "Guillotine cutting plans for chipboard sheets",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./chipcut.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", "", "log format: json or console")

	root.AddCommand(
		newPlaceCmd(a),
		newRecomputeCmd(a),
		newEstimateCmd(a),
		newCompareCmd(a),
		newVersionCmd(),
	)
	return root
}

// initialize loads configuration and the logger before any subcommand runs.
func (a *app) initialize(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	if err := a.v.BindPFlag("logger.level", flags.Lookup("log-level")); err != nil {
		return err
	}
	if err := a.v.BindPFlag("logger.format", flags.Lookup("log-format")); err != nil {
		return err
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "chipcut"})
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger()
	a.logger.Debug("Configuration loaded",
		zap.String("strategy", cfg.Engine.Strategy),
		zap.Float64("kerf", cfg.Engine.Kerf),
		zap.String("version", Version))
	return nil
}

// Execute runs the command tree with the given context.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	observability.Sync()
	return err
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
