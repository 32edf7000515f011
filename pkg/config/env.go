package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override file configuration.
const (
	EnvAssetDir     = "TANKS_ASSET_DIR"
	EnvTileSize     = "TANKS_TILE_SIZE"
	EnvNameFontSize = "TANKS_NAME_FONT_SIZE"
	EnvNameColor    = "TANKS_NAME_COLOR"
)

// ApplyEnv overrides c with any TANKS_* variables that are set and validates
// the result.
func ApplyEnv(c *RenderConfig) error {
	if dir, ok := os.LookupEnv(EnvAssetDir); ok {
		c.Assets.Dir = dir
	}

	if v, ok := os.LookupEnv(EnvTileSize); ok {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTileSize, v, err)
		}
		c.TileSize = size
	}

	if v, ok := os.LookupEnv(EnvNameFontSize); ok {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNameFontSize, v, err)
		}
		c.NameFont.Size = size
	}

	if v, ok := os.LookupEnv(EnvNameColor); ok {
		c.NameColor = v
	}

	return c.Validate()
}

// LoadConfigFromEnv returns DefaultConfig with environment overrides applied.
func LoadConfigFromEnv() (*RenderConfig, error) {
	c := DefaultConfig()
	if err := ApplyEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}
