package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shopfront/internal/api"
)

const sessionIDCookie = "shop_session"

// RedisStore keeps the session payload server-side in a Redis hash and
// hands the browser only an opaque session id.
type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
	ttl time.Duration

	// Secure marks the session id cookie for HTTPS-only transport.
	Secure bool
}

func NewRedisStore(conn *redis.Client, ctx context.Context, ttl time.Duration) (*RedisStore, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{rdb: conn, ctx: ctx, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisStore) Load(r *http.Request) Session {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil || c.Value == "" {
		return Session{}
	}

	val, err := s.rdb.HGetAll(s.ctx, sessionKey(c.Value)).Result()
	if err != nil {
		log.Printf("[SESSION] [ERROR] redis load failed: %v", err)
		return Session{}
	}
	token := val["token"]
	if token == "" || val["user"] == "" {
		return Session{}
	}

	var user api.User
	if err := json.Unmarshal([]byte(val["user"]), &user); err != nil || user.ID == "" {
		return Session{}
	}
	if !tokenAlive(token) {
		return Session{}
	}
	return Session{User: &user, Token: token}
}

func (s *RedisStore) Establish(w http.ResponseWriter, user api.User, token string) error {
	if token == "" || user.ID == "" {
		return errors.New("session: identity and credential are required together")
	}
	snapshot, err := json.Marshal(user)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	key := sessionKey(id)
	if err := s.rdb.HSet(s.ctx, key, "token", token, "user", string(snapshot)).Err(); err != nil {
		log.Printf("[SESSION] [ERROR] redis establish failed: %v", err)
		return err
	}
	s.rdb.Expire(s.ctx, key, s.ttl)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionIDCookie); err == nil && c.Value != "" {
		if err := s.rdb.Del(s.ctx, sessionKey(c.Value)).Err(); err != nil {
			log.Printf("[SESSION] [ERROR] redis clear failed: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
