package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"shopfront/internal/api"
	"shopfront/internal/config"
	"shopfront/internal/handlers"
	"shopfront/internal/session"
)

func main() {
	config.Load()

	client := api.New(api.Config{BaseURL: config.AppEnv.APIBaseURL})
	store := buildSessionStore()

	r := handlers.NewRouter(store, client, "templates/**/*")

	log.Println("[SHOP] [INFO] storefront listening on port", config.AppEnv.Port)
	r.Run(":" + config.AppEnv.Port)
}

func buildSessionStore() session.Store {
	if config.AppEnv.SessionBackend == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})
		store, err := session.NewRedisStore(rdb, context.Background(), config.AppEnv.SessionTTL)
		if err != nil {
			log.Fatal("[SESSION] [ERROR] redis unavailable: ", err)
		}
		log.Println("[SESSION] [INFO] redis session store at", config.AppEnv.RedisAddr)
		return store
	}
	return session.NewCookieStore(config.AppEnv.SessionTTL)
}
