package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/math"
	"github.com/spaghettifunk/hello-triangle/engine/renderer"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	VSync    bool   `toml:"vsync"`
	// Background colour as r, g, b, a in [0, 1].
	ClearColour []float32 `toml:"clear_colour"`
	// Directory whose shader sources override the embedded ones. Empty means
	// embedded only.
	AssetsDir string `toml:"assets_dir"`
	// Reload shaders when their sources change under AssetsDir.
	HotReload bool `toml:"hot_reload"`
	// Base name of the shader pair to render with.
	Shader string `toml:"shader"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	r, g, b, a := renderer.DefaultClearColour.RGBA()
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "Hello Triangle",
		LogLevel:    "info",
		VSync:       true,
		ClearColour: []float32{r, g, b, a},
		Shader:      "triangle",
	}
}

// LoadApplicationConfig reads a TOML file on top of DefaultApplicationConfig.
// An empty path returns the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size must be non-zero, got %dx%d", c.StartWidth, c.StartHeight)
	}
	if len(c.ClearColour) != 4 {
		return fmt.Errorf("clear_colour needs 4 components, got %d", len(c.ClearColour))
	}
	if _, ok := core.ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Shader == "" {
		return fmt.Errorf("shader name must not be empty")
	}
	return nil
}

// Level returns the configured log level, info when unset.
func (c *ApplicationConfig) Level() core.LogLevel {
	l, _ := core.ParseLogLevel(c.LogLevel)
	return l
}

// Colour returns the clear colour clamped to [0, 1].
func (c *ApplicationConfig) Colour() math.Colour {
	if len(c.ClearColour) != 4 {
		return renderer.DefaultClearColour
	}
	return math.Colour{
		X: c.ClearColour[0],
		Y: c.ClearColour[1],
		Z: c.ClearColour[2],
		W: c.ClearColour[3],
	}.Clamped()
}
