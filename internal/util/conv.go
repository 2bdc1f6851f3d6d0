package util

import (
	"strconv"
)

// ParseID 解析路径中的 ID，非正整数返回 ErrValidation
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrValidation
	}
	return uint(id), nil
}
