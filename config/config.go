package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey        string `mapstructure:"secret_key"`
		AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
		RefreshTTLHours  int    `mapstructure:"refresh_ttl_hours"`
	} `mapstructure:"jwt"`
	Election struct {
		ID    string `mapstructure:"id"`
		Start string `mapstructure:"start"`
		End   string `mapstructure:"end"`
	} `mapstructure:"election"`
	Ledger struct {
		RPCURL          string `mapstructure:"rpc_url"`
		ContractAddress string `mapstructure:"contract_address"`
		PrivateKey      string `mapstructure:"private_key"`
		ChainID         int64  `mapstructure:"chain_id"`
	} `mapstructure:"ledger"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}

// AccessTokenTTL returns the configured access token lifetime, defaulting to 15 minutes.
func (c *Config) AccessTokenTTL() time.Duration {
	if c.JWT.AccessTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.JWT.AccessTTLMinutes) * time.Minute
}

// RefreshTokenTTL returns the configured refresh token lifetime, defaulting to 7 days.
func (c *Config) RefreshTokenTTL() time.Duration {
	if c.JWT.RefreshTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.JWT.RefreshTTLHours) * time.Hour
}

// ElectionWindow parses the configured election window. Timestamps are RFC3339.
// Casting is permitted for start <= now < end.
func (c *Config) ElectionWindow() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, c.Election.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid election start: %w", err)
	}
	end, err = time.Parse(time.RFC3339, c.Election.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid election end: %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("election end %s is not after start %s", c.Election.End, c.Election.Start)
	}
	return start, end, nil
}
