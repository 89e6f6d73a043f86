package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Error 表示领域字段校验失败，handler 层据此返回 400。
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf 构造一条校验错误。
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidation 判断 err 链上是否存在校验错误。
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// StringMin 校验去除首尾空白后的最小长度，返回原始值。
// 字段在构造与更新时都必须经过同一条规则。
func StringMin(field, value string, min int) (string, error) {
	if len(strings.TrimSpace(value)) < min {
		return "", Errorf("%s must be at least %d characters long", field, min)
	}
	return value, nil
}

// OneOf 校验 value 是否属于允许的枚举集合（大小写敏感）。
func OneOf(field, value string, allowed []string) (string, error) {
	for _, item := range allowed {
		if value == item {
			return value, nil
		}
	}
	return "", Errorf("%s must be one of: %s", field, strings.Join(allowed, ", "))
}

// Email 做最低限度的邮箱格式检查：非空且包含 @，返回去除首尾空白后的值。
func Email(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !strings.Contains(trimmed, "@") {
		return "", Errorf("Subscriber email must be a valid email address")
	}
	return trimmed, nil
}
