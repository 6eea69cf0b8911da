package tools

import (
	"fmt"
	"strconv"
)

// ParseID 解析路径或查询参数中的正整数 id
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("无效的 id: %q", s)
	}
	return uint(id), nil
}
