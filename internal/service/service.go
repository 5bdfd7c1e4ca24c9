package service

import "context"

// WriteExecutor serializes write sequences sharing a key
// WriteExecutor 按键串行化写操作序列
type WriteExecutor interface {
	Execute(ctx context.Context, key string, fn func() error) error
}

// directWriteExecutor executes immediately, used when no queue is configured
// directWriteExecutor 直接执行，用于未配置写队列的场景
type directWriteExecutor struct{}

func (directWriteExecutor) Execute(ctx context.Context, key string, fn func() error) error {
	return fn()
}

// NewDirectWriteExecutor 创建直接执行的 WriteExecutor
func NewDirectWriteExecutor() WriteExecutor {
	return directWriteExecutor{}
}

// pageWriteKey 页面写序列的队列键
func pageWriteKey(recordID string) string {
	return "page:" + recordID
}
