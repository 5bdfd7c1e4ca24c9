// Package safe_close coordinates graceful shutdown of attached goroutines
// Package safe_close 协调附加协程的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose fans a close signal out to attached goroutines and waits
// for every one of them to report done
// SafeClose 将关闭信号广播给所有附加协程并等待它们全部完成
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs f in a new goroutine. f must call done when its cleanup
// finishes and should start shutting down once closeSignal is closed.
// Attach 在新协程中运行 f。f 清理完成后必须调用 done，
// 并在 closeSignal 关闭后开始退出
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal closes the signal channel. The first non-nil error
// wins and is returned by WaitClosed.
// SendCloseSignal 关闭信号通道。首个非 nil 错误会由 WaitClosed 返回
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeSignal)
}

// CloseSignal returns the channel closed by SendCloseSignal
// CloseSignal 返回由 SendCloseSignal 关闭的通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until the close signal is sent and all attached
// goroutines have called done
// WaitClosed 阻塞直到关闭信号发出且所有附加协程调用 done
func (s *SafeClose) WaitClosed() error {
	<-s.closeSignal
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
