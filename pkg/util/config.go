package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Boat BoatConfig `mapstructure:"boat" validate:"required"`
	API  APIConfig  `mapstructure:"api" validate:"required"`
	Log  LogConfig  `mapstructure:"log"`
}

// BoatConfig is what the fuel model needs to build a Boat.
type BoatConfig struct {
	BoatType         string  `mapstructure:"boat_type" validate:"oneof=synthetic constant"`
	BoatSpeed        float64 `mapstructure:"boat_speed" validate:"gt=0"`         // m/s
	ConstantFuelRate float64 `mapstructure:"constant_fuel_rate" validate:"gt=0"` // kg/s
	ShipType         string  `mapstructure:"ship_type"`
	Seed             uint64  `mapstructure:"seed"`
}

type APIConfig struct {
	Port      int           `mapstructure:"port" validate:"min=1,max=65535"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit bool          `mapstructure:"rate_limit"`
	// requests per second when RateLimit is on
	RPS   float64 `mapstructure:"rps" validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("boat.boat_type", "synthetic")
	v.SetDefault("boat.boat_speed", 6.0)
	v.SetDefault("boat.constant_fuel_rate", 1.0)
	v.SetDefault("boat.ship_type", "generic_cargo")
	v.SetDefault("boat.seed", 0)

	v.SetDefault("api.port", 6060)
	v.SetDefault("api.timeout", "60s")
	v.SetDefault("api.rate_limit", false)
	v.SetDefault("api.rps", 50.0)
	v.SetDefault("api.burst", 100)

	v.SetDefault("log.level", "info")
}

// ReadConfig loads ./data/config.* (or configPath when set), overlays WRT_* env vars
// and validates the result.
func ReadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./data/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WRT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func ValidateConfig(cfg *Config) error {
	if err := ValidateStruct(cfg); err != nil {
		return WrapErrorf(err, ErrBadParamInput, "invalid configuration")
	}
	return nil
}

// ValidateStruct runs the validate tags on v and flattens the failures into one error.
func ValidateStruct(v interface{}) error {
	validate := validator.New()
	if err := validate.Struct(v); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			msgs := make([]string, 0, len(vErrs))
			for _, e := range vErrs {
				msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
					e.Namespace(), e.Tag(), e.Value()))
			}
			return WrapErrorf(nil, ErrBadParamInput, "%s", strings.Join(msgs, "; "))
		}
		return WrapErrorf(err, ErrBadParamInput, "validation failed")
	}
	return nil
}
