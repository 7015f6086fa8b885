package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 主键统一使用 UUID 字符串
func NewID() string { return uuid.NewString() }

// NewRefNo 支付参考号，16 位大写十六进制
func NewRefNo() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}
