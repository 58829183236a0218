package config

import "flag"

// overrides are the command-line settings that win over the config file.
type overrides struct {
	config     string
	debug      bool
	windowed   bool
	fullscreen bool
	width      int
	height     int
	placements string
	resolution int
	watch      bool
	focus      string
}

var cli overrides

func init() {
	cli.register(flag.CommandLine)
}

func (o *overrides) register(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "Path to config file")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging and the FPS counter")
	fs.BoolVar(&o.windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&o.fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&o.width, "width", 0, "Window width")
	fs.IntVar(&o.height, "height", 0, "Window height")
	fs.StringVar(&o.placements, "placements", "", "Path to a .yaml or .toml placement table")
	fs.IntVar(&o.resolution, "resolution", 0, "Terrain grid resolution")
	fs.BoolVar(&o.watch, "watch", false, "Reload shading settings when the config file changes")
	fs.StringVar(&o.focus, "focus", "", "Start focused on this placement id")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return cli.config
}

// apply writes the set overrides onto cfg. Zero values leave cfg alone.
func (o overrides) apply(cfg *Config) {
	if o.debug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowFPS = true
	}
	switch {
	case o.fullscreen:
		cfg.Graphics.Fullscreen = true
	case o.windowed:
		cfg.Graphics.Fullscreen = false
	}
	if o.width > 0 {
		cfg.Graphics.Width = o.width
	}
	if o.height > 0 {
		cfg.Graphics.Height = o.height
	}
	if o.placements != "" {
		cfg.Scene.Placements = o.placements
	}
	if o.resolution > 0 {
		cfg.Scene.Layout.TerrainResolution = o.resolution
	}
	if o.watch {
		cfg.Game.HotReload = true
	}
	if o.focus != "" {
		cfg.Interaction.StartFocus = o.focus
	}
}
