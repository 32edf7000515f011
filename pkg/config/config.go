// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"strings"
)

// RenderConfig holds the visual constants of the client. It is loaded once
// and treated as read-only afterwards.
type RenderConfig struct {
	NameFont           FontConfig   `json:"nameFont"`
	NameColor          string       `json:"nameColor"`
	HealthColor        string       `json:"healthColor"`
	HealthMissingColor string       `json:"healthMissingColor"`
	TileSize           float64      `json:"tileSize"`
	Assets             AssetConfig  `json:"assets"`
	Window             WindowConfig `json:"window"`
}

// FontConfig names the font used for player name labels
type FontConfig struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
}

// AssetConfig locates the sprite files. File names are joined onto Dir.
type AssetConfig struct {
	Dir         string `json:"dir"`
	SelfTank    string `json:"selfTank"`
	SelfTurret  string `json:"selfTurret"`
	OtherTank   string `json:"otherTank"`
	OtherTurret string `json:"otherTurret"`
	Bullet      string `json:"bullet"`
	Tile        string `json:"tile"`
	// PowerupTemplate is a fmt pattern with a single %s for the powerup name.
	PowerupTemplate string `json:"powerupTemplate"`
	// Powerups lists the powerup names loaded up front.
	Powerups []string `json:"powerups"`
}

// WindowConfig sizes the client window
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// Path joins file onto the asset directory.
func (a AssetConfig) Path(file string) string {
	if a.Dir == "" {
		return file
	}
	return path.Join(a.Dir, file)
}

// PowerupPath returns the sprite path for the named powerup.
func (a AssetConfig) PowerupPath(name string) string {
	return a.Path(fmt.Sprintf(a.PowerupTemplate, name))
}

// LoadConfig loads a configuration from a JSON file. Fields missing from the
// file keep their DefaultConfig values.
func LoadConfig(file string) (*RenderConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", file, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *RenderConfig, file string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock look of the game.
func DefaultConfig() *RenderConfig {
	return &RenderConfig{
		NameFont: FontConfig{
			Family: "Helvetica",
			Size:   14,
		},
		NameColor:          "black",
		HealthColor:        "green",
		HealthMissingColor: "red",
		TileSize:           100,
		Assets: AssetConfig{
			Dir:             "../data",
			SelfTank:        "self_tank.png",
			SelfTurret:      "self_turret.png",
			OtherTank:       "other_tank.png",
			OtherTurret:     "other_turret.png",
			Bullet:          "bullet.png",
			Tile:            "tile.png",
			PowerupTemplate: "%s.png",
			Powerups:        []string{"health", "shotgun", "rapidfire", "speedboost", "shield"},
		},
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Go Tanks",
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c *RenderConfig) Validate() error {
	var errs []error

	if !(c.NameFont.Size > 0) || math.IsInf(c.NameFont.Size, 0) {
		errs = append(errs, fmt.Errorf("nameFont.size must be a positive finite number, got %v", c.NameFont.Size))
	}
	// Tiles below one pixel would need unbounded draws to cover a view.
	if !(c.TileSize >= 1) || math.IsInf(c.TileSize, 0) {
		errs = append(errs, fmt.Errorf("tileSize must be a finite number of at least 1, got %v", c.TileSize))
	}

	colors := map[string]string{
		"nameColor":          c.NameColor,
		"healthColor":        c.HealthColor,
		"healthMissingColor": c.HealthMissingColor,
	}
	for _, field := range []string{"nameColor", "healthColor", "healthMissingColor"} {
		if _, err := ParseColor(colors[field]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	files := map[string]string{
		"assets.selfTank":    c.Assets.SelfTank,
		"assets.selfTurret":  c.Assets.SelfTurret,
		"assets.otherTank":   c.Assets.OtherTank,
		"assets.otherTurret": c.Assets.OtherTurret,
		"assets.bullet":      c.Assets.Bullet,
		"assets.tile":        c.Assets.Tile,
	}
	for _, field := range []string{"assets.selfTank", "assets.selfTurret", "assets.otherTank", "assets.otherTurret", "assets.bullet", "assets.tile"} {
		if files[field] == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", field))
		}
	}
	if strings.Count(c.Assets.PowerupTemplate, "%s") != 1 {
		errs = append(errs, fmt.Errorf("assets.powerupTemplate must contain exactly one %%s, got %q", c.Assets.PowerupTemplate))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}
