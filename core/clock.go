package core

import "time"

// Clock 是可注入的时钟。引擎内所有时间（事件时间戳、训练时间）都经由它读取，
// 便于调度逻辑在测试中与真实时间解耦。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间。
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
