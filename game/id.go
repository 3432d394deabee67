package game

import (
	"strings"

	"github.com/google/uuid"
)

// ShortID 生成 n 位十六进制随机 ID（取自 UUID v4），进程内低碰撞即可，不保证全局唯一
func ShortID(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n <= 0 || n > len(s) {
		return s
	}
	return s[:n]
}
