package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/orbitcore/config"
	"github.com/milk9111/orbitcore/media"
)

var v = config.New(".")

var rootCmd = &cobra.Command{
	Use:          "orbitcore",
	Short:        "A 3D universe of musical planets",
	Long:         "Orbit Core renders a universe of planets, each one a genre with its own soundtrack.",
	SilenceUsage: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b, err := cfg.TOML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	rootCmd.RunE = runGame

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./orbitcore.toml or ./orbitcore.yaml)")
	flags.Bool("debug", false, "enable debug mode")
	flags.Bool("watch", false, "reload data tables from --data-dir when they change")
	flags.String("data-dir", "", "directory with planets.yaml, messages.yaml and scripts/ overriding the embedded copies")
	flags.String("route", "", "route to open after loading, e.g. /planet/corefire")
	flags.Bool("skip-loading", false, "skip the loading sequence")
	flags.BoolP("base-monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flags.Int("stars", 0, "number of background stars")
	flags.Uint64("seed", 0, "starfield seed")

	bind := map[string]string{
		"debug":        "debug",
		"data.watch":   "watch",
		"data.dir":     "data-dir",
		"start_route":  "route",
		"skip_loading": "skip-loading",
		"base_monitor": "base-monitor",
		"scene.stars":  "stars",
		"scene.seed":   "seed",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(configCmd)
}

func loadConfig() (config.Config, error) {
	if file, _ := rootCmd.PersistentFlags().GetString("config"); file != "" {
		v.SetConfigFile(file)
	}
	if err := config.Read(v); err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, media.NewAssetFactory(nil))
	if err != nil {
		return err
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	return ebiten.RunGame(game)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
