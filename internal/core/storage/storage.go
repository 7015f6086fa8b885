// Package storage 对象存储：上传设计稿、删除、生成临时下载链接
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"printshop-api/pkg/utils"
)

type Object struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) (Object, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// NewKey uploads/2006/01/02/<id>-<name>，name 只保留安全字符
func NewKey(name string, now time.Time) string {
	return fmt.Sprintf("uploads/%s/%s-%s", now.UTC().Format("2006/01/02"), utils.NewID(), cleanName(name))
}

func cleanName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 || base == "." || base == "/" {
		return "file"
	}
	return b.String()
}
