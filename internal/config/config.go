package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr    string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	AllowOrigins  string
	LogDir        string
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", ":5000")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=secret dbname=secondbrain port=5432 sslmode=disable TimeZone=UTC")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ALLOW_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOG_DIR", "./logs")
	viper.AutomaticEnv()

	return &Config{
		ServerAddr:    viper.GetString("PORT"),
		DatabaseDSN:   viper.GetString("DATABASE_DSN"),
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		AllowOrigins:  viper.GetString("ALLOW_ORIGINS"),
		LogDir:        viper.GetString("LOG_DIR"),
	}
}
