package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"4000"`

	MaxPlayers int `yaml:"max-players" env-default:"100"`

	// Liveness sweep knobs, in seconds. yaml cannot decode time.Duration,
	// so the getters below do the conversion.
	KeepAliveIntervalSec int `yaml:"keep-alive-interval" env-default:"15"`
	ConnectionTimeoutSec int `yaml:"connection-timeout" env-default:"60"`

	Redis Redis `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Config) KeepAliveInterval() time.Duration {
	return time.Duration(that.KeepAliveIntervalSec) * time.Second
}

func (that *Config) ConnectionTimeout() time.Duration {
	return time.Duration(that.ConnectionTimeoutSec) * time.Second
}

// GetRedisAddr - returns the redis address, or an empty string when the
// game archive is disabled.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
