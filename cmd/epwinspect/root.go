package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the settings shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "epwinspect",
		Short: "Inspect EnergyPlus Weather (EPW) files",
		Long: `Decodes EPW files and reports the station header, per-field
statistics, the tabular column manifest and data integrity checks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.epwinspect.yaml)")
	root.PersistentFlags().Bool("json", false, "print JSON instead of styled text")
	_ = a.v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(
		newHeaderCmd(a),
		newStatsCmd(a),
		newManifestCmd(a),
		newValidateCmd(a),
	)
	return root
}

// initConfig reads the config file and EPW_* environment variables.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix("EPW")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	a.v.SetConfigName(".epwinspect")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath("$HOME")
	a.v.AddConfigPath(".")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func (a *app) jsonOutput() bool {
	return a.v.GetBool("json")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loadFile(path string) (*epw.File, error) {
	f, err := epw.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}
