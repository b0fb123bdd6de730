package rediscounter

import "github.com/redis/go-redis/v9"

// Client подмножество go-redis, достаточное для хранилища (*redis.Client, *redis.ClusterClient)
type Client interface {
	redis.Scripter
	Pipeline() redis.Pipeliner
}
