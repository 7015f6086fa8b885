package cache

import (
	"context"
	"encoding/json"
	"time"
)

// MissTTL 回源结果为空时的缓存时长上限
const MissTTL = 30 * time.Second

var nullJSON = []byte("null")

// GetOrLoadJSON 以 JSON 缓存 load 的结果。load 返回 nil 时按 min(ttl, MissTTL) 缓存空值，读出为 (nil, nil)
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.Fetch(ctx, key, func(ctx context.Context) ([]byte, time.Duration, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, 0, err
		}
		if v == nil {
			return nullJSON, min(ttl, MissTTL), nil
		}
		b, err := json.Marshal(v)
		return b, ttl, err
	})
	if err != nil {
		return nil, err
	}
	if string(b) == string(nullJSON) {
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		// 脏数据当作未命中，下次回源覆盖
		_ = c.Delete(ctx, key)
		return nil, err
	}
	return out, nil
}
