package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".credvault"
	defaultPassAPIURL    = "https://passutil.example.com"

	configDirPermissions = 0o700
)

// Config carries everything the client needs: where the server lives,
// where local state and the key store sit, and how to reach the password
// utility API.
type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	ConfigDir     string `mapstructure:"config_dir"`
	KeyStoreDir   string `mapstructure:"keystore_dir"`
	StatePath     string `mapstructure:"state_path"`
	PassAPIURL    string `mapstructure:"pass_api_url"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
}

// MustLoad loads the client configuration from the environment, creating
// the config directory on first run.
func MustLoad() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("PASS_API_URL", defaultPassAPIURL)
	viper.SetDefault("ENABLE_TLS", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, configDirPermissions); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	return &Config{
		Env:           viper.GetString("APP_ENV"),
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		ConfigDir:     configDir,
		KeyStoreDir:   filepath.Join(configDir, "keys"),
		StatePath:     filepath.Join(configDir, "state.db"),
		PassAPIURL:    viper.GetString("PASS_API_URL"),
		EnableTLS:     viper.GetBool("ENABLE_TLS"),
	}, nil
}
