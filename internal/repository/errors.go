package repository

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// IsDuplicateKey 判断是否违反唯一约束（TranslateError 之外兼容未翻译的驱动错误）
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
