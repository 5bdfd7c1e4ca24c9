// Package timex provides a time type with a fixed JSON wire format
// Package timex 提供具有固定 JSON 序列化格式的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// WireFormat ISO8601 with millisecond precision, always UTC
// WireFormat ISO8601 毫秒精度，始终为 UTC
const WireFormat = "2006-01-02T15:04:05.000Z07:00"

// Time wraps time.Time to control JSON and database encoding
// Time 包装 time.Time 以控制 JSON 与数据库编码
type Time time.Time

// Now returns the current time as a Time
// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

// Std returns the underlying time.Time
// Std 返回底层的 time.Time
func (t Time) Std() time.Time {
	return time.Time(t)
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// Before reports whether t is before u
// Before 判断 t 是否早于 u
func (t Time) Before(u Time) bool {
	return time.Time(t).Before(time.Time(u))
}

// After reports whether t is after u
// After 判断 t 是否晚于 u
func (t Time) After(u Time) bool {
	return time.Time(t).After(time.Time(u))
}

// String implements fmt.Stringer using the wire format
// String 使用 wire 格式实现 fmt.Stringer
func (t Time) String() string {
	return time.Time(t).UTC().Format(WireFormat)
}

// MarshalJSON encodes as a quoted ISO8601 UTC string
// MarshalJSON 编码为带引号的 ISO8601 UTC 字符串
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts the wire format and plain RFC3339
// UnmarshalJSON 接受 wire 格式以及普通 RFC3339
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timex: invalid time literal %s", s)
	}
	s = s[1 : len(s)-1]

	parsed, err := time.Parse(WireFormat, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timex: parse %q: %w", s, err)
		}
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer for gorm
// Value 为 gorm 实现 driver.Valuer
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner for gorm
// Scan 为 gorm 实现 sql.Scanner
func (t *Time) Scan(v any) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case string:
		parsed, err := time.Parse(WireFormat, value)
		if err != nil {
			parsed, err = time.Parse("2006-01-02 15:04:05.999999999-07:00", value)
			if err != nil {
				return fmt.Errorf("timex: scan %q: %w", value, err)
			}
		}
		*t = Time(parsed)
	case []byte:
		return t.Scan(string(value))
	default:
		return fmt.Errorf("timex: cannot scan %T into Time", v)
	}
	return nil
}
