package redis

import (
	"github.com/go-redis/redis/v8"
)

// Client обертка над redis.Client для удобства
type Client struct {
	*redis.Client
}

// Config - параметры подключения к Redis. Значения читает composition
// root (cmd/main.go), адаптер окружение не трогает.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient создает клиент Redis для кэша решений о правах
func NewClient(cfg Config) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}
