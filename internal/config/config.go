package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Redis *struct {
		// Address of the redis cache. Empty disables caching entirely;
		// the repository then hits sqlite directly.
		Address string `json:"address"`
	} `json:"redis"`
	// ActionTimeoutSeconds is how long a player may sit on their turn
	// before the scanner auto-plays it.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// BattleExpiryMinutes is how long an idle battle survives before it
	// is forfeited and its row marked expired.
	BattleExpiryMinutes int `json:"battle_expiry_minutes"`
	// SeedDemoData inserts the built-in demo NBA dataset when the game
	// log table is empty, so a fresh checkout is playable offline.
	SeedDemoData *bool `json:"seed_demo_data"`
	Debug        bool  `json:"debug"`
}

// LoadedConfig is the validated runtime configuration.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	RedisAddress  string
	ActionTimeout time.Duration
	BattleExpiry  time.Duration
	SeedDemoData  bool
	Debug         bool
}

// LoadConfig reads and validates the JSON configuration file at path.
// Every field has a sensible default; an unreadable or malformed file is
// an error, a missing optional section is not.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress: ":8080",
		DatabasePath:  "./data/statattack.db",
		ActionTimeout: 60 * time.Second,
		BattleExpiry:  30 * time.Minute,
		SeedDemoData:  true,
		Debug:         rc.Debug,
	}

	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		out.DatabasePath = rc.Database.Path
	}
	if rc.Redis != nil {
		out.RedisAddress = strings.TrimSpace(rc.Redis.Address)
	}
	if rc.ActionTimeoutSeconds != 0 {
		if rc.ActionTimeoutSeconds < 10 {
			return nil, fmt.Errorf("config file %s: action_timeout_seconds must be at least 10", path)
		}
		out.ActionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	if rc.BattleExpiryMinutes != 0 {
		if rc.BattleExpiryMinutes < 1 {
			return nil, fmt.Errorf("config file %s: battle_expiry_minutes must be positive", path)
		}
		out.BattleExpiry = time.Duration(rc.BattleExpiryMinutes) * time.Minute
	}
	if rc.SeedDemoData != nil {
		out.SeedDemoData = *rc.SeedDemoData
	}

	return out, nil
}
