package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kungfusheep/konsole"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every subcommand shares: configuration and the logger.
type app struct {
	v       *viper.Viper
	cfgFile string
	log     *zap.Logger
}

// settings is the resolved output configuration.
type settings struct {
	width  int
	color  konsole.ColorPolicy
	border konsole.BorderStyle
	theme  *konsole.Theme
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "konsole",
		Short: "Render tables, boxes, menus and progress bars in the terminal",
		Long: `konsole draws console widgets from the shell.

Settings come from flags, KONSOLE_* environment variables and a
konsole.yaml file in the current directory or ~/.config/konsole.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default ./konsole.yaml, then ~/.config/konsole/konsole.yaml)")
	f.Int("width", 0, "output width, 0 detects the terminal")
	f.String("color", "auto", "color output: auto, always or never")
	f.String("border", "single", "border template: "+strings.Join(konsole.BorderNames(), ", "))
	f.String("theme", "", "theme: dark, light or monochrome")
	f.BoolP("verbose", "v", false, "debug logging on stderr")
	_ = a.v.BindPFlags(f)

	root.AddCommand(
		newTableCmd(a),
		newBoxCmd(a),
		newChooseCmd(a),
		newPauseCmd(a),
		newProgressCmd(a),
	)
	return root
}

// init reads the config file and environment and builds the logger.
func (a *app) init() error {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName("konsole")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "konsole"))
		}
	}
	v.SetEnvPrefix("KONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if v.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	konsole.SetLogger(log.Named("konsole"))
	a.log.Debug("configuration loaded",
		zap.String("file", v.ConfigFileUsed()),
		zap.Int("width", v.GetInt("width")),
		zap.String("color", v.GetString("color")),
		zap.String("border", v.GetString("border")))
	return nil
}

// settings resolves the output configuration, reporting every bad value.
func (a *app) settings() (settings, error) {
	s := settings{width: max(a.v.GetInt("width"), 0)}

	color, errColor := konsole.ParseColorPolicy(a.v.GetString("color"))
	border, errBorder := konsole.BorderByName(a.v.GetString("border"))
	var errTheme error
	if name := a.v.GetString("theme"); name != "" {
		var t konsole.Theme
		if t, errTheme = konsole.ThemeByName(name); errTheme == nil {
			s.theme = &t
		}
	}
	if err := multierr.Combine(errColor, errBorder, errTheme); err != nil {
		return s, err
	}
	s.color, s.border = color, border
	return s, nil
}

func (a *app) console(w io.Writer, s settings) *konsole.Console {
	return konsole.NewConsole(w, konsole.WithWidth(s.width), konsole.WithColor(s.color))
}
