package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dashboard:"

// Client - cache opcional de respuestas del tablero sobre Redis. Si no hay
// REDIS_ADDR configurado el cliente es nil y todas las operaciones son no-op.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Client {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Redis no disponible (%v), el cache queda deshabilitado", err)
		return nil
	}

	return &Client{rdb: rdb, ttl: ttl}
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *Client) Set(ctx context.Context, key string, val []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, val, c.ttl).Err(); err != nil {
		log.Printf("No se pudo escribir en el cache: %v", err)
	}
}

// Flush: invalida todas las respuestas cacheadas del tablero. Se llama
// después de cada mutación de transacciones.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("No se pudo invalidar la clave %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("Error al recorrer claves del cache: %v", err)
	}
}
