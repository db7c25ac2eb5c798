package configs

import (
	"log"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type Config struct {
	Viper *viper.Viper
}

func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		if err := v.ReadInConfig(); err != nil {
			log.Printf("No config file found, using defaults and environment: %v", err)
		}

		config = &Config{Viper: v}
	})
	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("chat.mailbox_size", 256)
	v.SetDefault("chat.history_window", 30)
	v.SetDefault("chat.default_model", "gpt-4o")
	v.SetDefault("snapshot.ttl_seconds", 3600)
	v.SetDefault("tokens.monthly_limit", 1000000)
	v.SetDefault("tokens.warning_ratio", 0.8)
	v.SetDefault("minio.use_ssl", false)
}
