package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	adapter_bubbletea "github.com/ionut-t/gotext/adapter-bubbletea"
	"github.com/ionut-t/gotext/core"
	"github.com/ionut-t/gotext/internal/config"
	"github.com/ionut-t/gotext/internal/log"
)

func init() {
	// Query the background colour before the program owns stdin, otherwise
	// the OSC 11 reply can show up as typed input.
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:     "gotext [file]",
	Short:   "A small terminal text editor",
	Long:    `gotext edits one file at a time with grapheme-aware cursor movement, incremental search and syntax highlighting.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/gotext/config.yaml)")
	rootCmd.Flags().BoolVar(&debug, "debug", false,
		"write debug logs to the configured log_path")
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(afero.NewOsFs(), cfgFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	if cfg.Debug {
		if _, err := log.InitWithTeaLog(cfg.LogPath, "gotext"); err != nil {
			return err
		}
		defer log.Close()
		log.SetMinLevel(log.ParseLevel(cfg.LogLevel))
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	model := newModel(cfg, path)
	return runSession(model, func() error {
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	})
}

func newModel(cfg config.Config, path string) *adapter_bubbletea.Model {
	welcome := ""
	if cfg.ShowWelcome {
		welcome = fmt.Sprintf("gotext editor -- version %s", version)
	}

	model := adapter_bubbletea.New(0, 0, adapter_bubbletea.Options{
		Storage:        core.NewOSStorage(),
		Theme:          themeFromConfig(cfg),
		QuitTimes:      cfg.QuitTimes,
		WelcomeMessage: welcome,
		WatchFile:      cfg.WatchFile,
	})
	if path != "" {
		model.Open(path)
	}
	return model
}

// runSession runs the program and releases the model's resources however
// run returns, including by panic.
func runSession(model *adapter_bubbletea.Model, run func() error) (err error) {
	defer func() {
		model.Close()
		if r := recover(); r != nil {
			log.Error(log.CatUI, "session panicked", "panic", r)
			err = fmt.Errorf("editor crashed: %v", r)
		}
	}()

	if err := run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	if err := model.Err(); err != nil {
		log.Debug(log.CatUI, "last editor error", "error", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// SetVersion sets the version string shown by --version and the welcome
// message.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
