package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/milk9111/orbitcore/route"
)

const (
	EnvPrefix = "ORBITCORE"
	FileName  = "orbitcore"
)

var ErrInvalid = errors.New("config: invalid")

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type SceneConfig struct {
	Stars       int     `mapstructure:"stars"`
	MinDistance float64 `mapstructure:"min_distance"`
	MaxDistance float64 `mapstructure:"max_distance"`
	Seed        uint64  `mapstructure:"seed"`
}

type LoadingConfig struct {
	Tick          time.Duration `mapstructure:"tick"`
	ContinueDelay time.Duration `mapstructure:"continue_delay"`
	UseDurations  bool          `mapstructure:"use_durations"`
}

type AudioConfig struct {
	FadeFrames int `mapstructure:"fade_frames"`
}

type DataConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// Config holds the runtime configuration of the app. Values come from
// orbitcore.toml or orbitcore.yaml, ORBITCORE_* env vars and CLI flags.
type Config struct {
	Window      WindowConfig  `mapstructure:"window"`
	Scene       SceneConfig   `mapstructure:"scene"`
	Loading     LoadingConfig `mapstructure:"loading"`
	Audio       AudioConfig   `mapstructure:"audio"`
	Data        DataConfig    `mapstructure:"data"`
	StartRoute  string        `mapstructure:"start_route"`
	SkipLoading bool          `mapstructure:"skip_loading"`
	Debug       bool          `mapstructure:"debug"`
	BaseMonitor bool          `mapstructure:"base_monitor"`
}

// SetDefaults installs the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Orbit Core")
	v.SetDefault("scene.stars", 1000)
	v.SetDefault("scene.min_distance", 5.0)
	v.SetDefault("scene.max_distance", 50.0)
	v.SetDefault("scene.seed", 1)
	v.SetDefault("loading.tick", "1s")
	v.SetDefault("loading.continue_delay", "1s")
	v.SetDefault("loading.use_durations", false)
	v.SetDefault("audio.fade_frames", 30)
	v.SetDefault("data.dir", "")
	v.SetDefault("data.watch", false)
	v.SetDefault("start_route", route.RootPath)
	v.SetDefault("skip_loading", false)
	v.SetDefault("debug", false)
	v.SetDefault("base_monitor", false)
}

// New returns a viper instance wired for env vars and the optional config
// file in the given search paths.
func New(paths ...string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName(FileName)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	return v
}

// Read loads the config file if one exists. A missing file is not an error.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read: %w", err)
	}
	return nil
}

// Load decodes and validates v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Scene.Stars < 0:
		return fmt.Errorf("%w: scene.stars %d", ErrInvalid, c.Scene.Stars)
	case c.Scene.MinDistance <= 0 || c.Scene.MaxDistance < c.Scene.MinDistance:
		return fmt.Errorf("%w: scene distance range [%g,%g]", ErrInvalid, c.Scene.MinDistance, c.Scene.MaxDistance)
	case c.Loading.Tick < 0 || c.Loading.ContinueDelay < 0:
		return fmt.Errorf("%w: negative loading timing", ErrInvalid)
	}
	if _, err := route.Parse(c.StartRoute); err != nil {
		return fmt.Errorf("%w: start_route: %w", ErrInvalid, err)
	}
	return nil
}

// LoadingTick is the per-message hold of the loading sequence. Zero means
// each message uses its own duration.
func (c Config) LoadingTick() time.Duration {
	if c.Loading.UseDurations {
		return 0
	}
	return c.Loading.Tick
}

// TOML renders c as a config file.
func (c Config) TOML() ([]byte, error) {
	doc := map[string]any{
		"window": map[string]any{
			"width":  c.Window.Width,
			"height": c.Window.Height,
			"title":  c.Window.Title,
		},
		"scene": map[string]any{
			"stars":        c.Scene.Stars,
			"min_distance": c.Scene.MinDistance,
			"max_distance": c.Scene.MaxDistance,
			"seed":         c.Scene.Seed,
		},
		"loading": map[string]any{
			"tick":           c.Loading.Tick.String(),
			"continue_delay": c.Loading.ContinueDelay.String(),
			"use_durations":  c.Loading.UseDurations,
		},
		"audio": map[string]any{
			"fade_frames": c.Audio.FadeFrames,
		},
		"data": map[string]any{
			"dir":   c.Data.Dir,
			"watch": c.Data.Watch,
		},
		"start_route":  c.StartRoute,
		"skip_loading": c.SkipLoading,
		"debug":        c.Debug,
		"base_monitor": c.BaseMonitor,
	}
	b, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return b, nil
}
