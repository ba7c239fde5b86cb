// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// It combines github.com/joho/godotenv and github.com/caarlos0/env/v11
// behind a small generic API:
//
//	type PostgresConfig struct {
//		URL          string `env:"PG_CONN_URL,required"`
//		MaxOpenConns int32  `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//	}
//
//	var cfg PostgresConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once per process and then served from a
// cache, so components can call Load independently without re-reading the
// environment or coordinating startup order.
package config
