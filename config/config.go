package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lab1702/duel-arena/game"
	"github.com/lab1702/duel-arena/server"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. DUEL_SERVER_PORT
const EnvPrefix = "DUEL"

// Load sets default values, then applies an optional .env file, environment
// overrides and an optional config file (json, yaml or toml by extension).
func Load(configFile string) error {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.sendEvery", 2)
	viper.SetDefault("server.codec", "json")
	viper.SetDefault("server.allowedOrigins", []string{})

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)

	viper.SetDefault("game.targetKills", game.DefaultTargetKills)
	viper.SetDefault("game.roundSeconds", game.DefaultRoundSeconds)
	viper.SetDefault("game.seed", 0)

	for tier, p := range game.DefaultProfiles {
		prefix := "difficulty." + string(tier) + "."
		viper.SetDefault(prefix+"speed", p.BotSpeed)
		viper.SetDefault(prefix+"fireIntervalMs", p.BotFireInterval.Milliseconds())
		viper.SetDefault(prefix+"accuracy", p.BotAccuracy)
		viper.SetDefault(prefix+"dodgeChance", p.BotDodgeChance)
		viper.SetDefault(prefix+"predictionChance", p.BotPredictionChance)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return nil
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Profiles builds the difficulty table from the difficulty.<tier> keys
func Profiles() (game.ProfileTable, error) {
	table := make(game.ProfileTable, len(game.Tiers))
	for _, tier := range game.Tiers {
		prefix := "difficulty." + string(tier) + "."
		table[tier] = game.DifficultyProfile{
			BotSpeed:            viper.GetFloat64(prefix + "speed"),
			BotFireInterval:     time.Duration(viper.GetInt64(prefix+"fireIntervalMs")) * time.Millisecond,
			BotAccuracy:         viper.GetFloat64(prefix + "accuracy"),
			BotDodgeChance:      viper.GetFloat64(prefix + "dodgeChance"),
			BotPredictionChance: viper.GetFloat64(prefix + "predictionChance"),
		}
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid difficulty config: %w", err)
	}
	return table, nil
}

// Rules returns the round rules from the game.* keys
func Rules() (server.Rules, error) {
	rules := server.Rules{
		TargetKills:  viper.GetInt("game.targetKills"),
		RoundSeconds: viper.GetInt("game.roundSeconds"),
	}
	if err := rules.Validate(); err != nil {
		return server.Rules{}, fmt.Errorf("invalid game config: %w", err)
	}
	return rules, nil
}

// ServerConfig assembles the full server settings
func ServerConfig() (server.Config, error) {
	cfg := server.DefaultConfig()

	codec, err := server.ParseCodec(viper.GetString("server.codec"))
	if err != nil {
		return cfg, fmt.Errorf("invalid server config: %w", err)
	}
	cfg.Codec = codec

	cfg.SendEvery = viper.GetInt("server.sendEvery")
	if cfg.SendEvery < 1 {
		return cfg, fmt.Errorf("invalid server config: sendEvery must be at least 1, got %d", cfg.SendEvery)
	}
	cfg.AllowedOrigins = viper.GetStringSlice("server.allowedOrigins")
	cfg.Seed = viper.GetUint64("game.seed")

	if cfg.Profiles, err = Profiles(); err != nil {
		return cfg, err
	}
	if cfg.Rules, err = Rules(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
