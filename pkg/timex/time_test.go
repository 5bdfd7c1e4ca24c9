package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	// Test Unix()
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}

	// Test UnixMilli()
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	// Test UnixMicro()
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}

	// Test UnixNano()
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}

	// Verify it's not returning time.Now() by waiting a bit
	// 通过等待一会确认它不是返回 time.Now()
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() changed after sleep, it should be static. got %v, want %v", tt.Unix(), now.Unix())
	}
}

func TestTime_WireFormat(t *testing.T) {
	tt := Time(time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC))

	data, err := tt.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if got, want := string(data), `"2024-01-02T03:04:05.678Z"`; got != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}

	var parsed Time
	if err := parsed.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if parsed.UnixMilli() != tt.UnixMilli() {
		t.Errorf("round trip UnixMilli() = %v, want %v", parsed.UnixMilli(), tt.UnixMilli())
	}
}

func TestTime_WireFormatNonUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	tt := Time(time.Date(2024, 6, 1, 10, 0, 0, 0, loc))

	// wire format always normalizes to UTC
	// 序列化格式始终归一化为 UTC
	if got, want := tt.String(), "2024-06-01T02:00:00.000Z"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
