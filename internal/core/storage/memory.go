package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"printshop-api/internal/core/apperr"
)

// Memory 进程内对象存储，未配置 bucket 时的本地开发替身
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory { return &Memory{objects: map[string][]byte{}} }

func (m *Memory) Put(ctx context.Context, name, contentType string, body io.Reader, size int64) (Object, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return Object{}, apperr.Upstream("read upload body failed", err)
	}
	key := NewKey(name, time.Now())
	m.mu.Lock()
	m.objects[key] = b
	m.mu.Unlock()
	return Object{Key: key, Size: int64(len(b)), Type: contentType}, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	q := url.Values{"expires": {time.Now().Add(ttl).UTC().Format(time.RFC3339)}}
	return "memory://" + key + "?" + q.Encode(), nil
}

// Open 读回对象
func (m *Memory) Open(key string) (io.Reader, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, false
	}
	return bytes.NewReader(b), true
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
