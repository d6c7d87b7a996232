package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/xmdhs/go-rijndael/crypto"
)

const (
	// ConfigPathEnv names an optional YAML config file.
	ConfigPathEnv = "RIJNDAEL_CONFIG"
	// DotEnvFile is loaded into the environment when present.
	DotEnvFile = ".env"
)

// ErrConflictingKeys is returned when both a text key and a hex key are set.
var ErrConflictingKeys = errors.New("key and key_hex are mutually exclusive")

// Config holds the settings shared by the encrypt and decrypt commands.
type Config struct {
	Mode         string `yaml:"mode" env:"RIJNDAEL_MODE" env-default:"cbc"`
	Key          string `yaml:"key" env:"RIJNDAEL_KEY"`
	KeyHex       string `yaml:"key_hex" env:"RIJNDAEL_KEY_HEX"`
	LogLevel     string `yaml:"log_level" env:"RIJNDAEL_LOG_LEVEL" env-default:"INFO"`
	StripPadding bool   `yaml:"strip_padding" env:"RIJNDAEL_STRIP_PADDING" env-default:"false"`
}

// Load reads configuration from the YAML file at path, or from the file named
// by RIJNDAEL_CONFIG when path is empty, and then from the environment.
// With no file at all only the environment and defaults are used.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot load %s: %w", DotEnvFile, err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot load config file: %w", err)
	}
	return &cfg, nil
}

// BlockMode parses Mode.
func (c *Config) BlockMode() (crypto.Mode, error) {
	return crypto.ParseMode(c.Mode)
}

// KeyBytes returns the configured key, decoding KeyHex when it is used. It
// returns nil without error when no key is configured.
func (c *Config) KeyBytes() ([]byte, error) {
	switch {
	case c.Key != "" && c.KeyHex != "":
		return nil, ErrConflictingKeys
	case c.KeyHex != "":
		key, err := hex.DecodeString(c.KeyHex)
		if err != nil {
			return nil, fmt.Errorf("decode key_hex: %w", err)
		}
		return key, nil
	case c.Key != "":
		return []byte(c.Key), nil
	default:
		return nil, nil
	}
}
