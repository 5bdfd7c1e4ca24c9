package writequeue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ExecuteSerializesSameKey(t *testing.T) {
	m := New(nil, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	}()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	// 同一键的操作必须按提交顺序串行执行
	for i := 0; i < 10; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), "page:1", func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
		// 保证提交顺序
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	require.Len(t, order, 10)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestManager_ExecuteDifferentKeys(t *testing.T) {
	m := New(nil, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	}()

	var wg sync.WaitGroup
	for _, key := range []string{"page:a", "page:b", "page:c"} {
		wg.Add(1)
		key := key
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), key, func() error { return nil })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, m.QueueCount())
}

func TestManager_ExecuteAfterShutdown(t *testing.T) {
	m := New(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))

	err := m.Execute(context.Background(), "page:1", func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
	assert.True(t, m.IsClosed())
}

func TestManager_ExecutePropagatesError(t *testing.T) {
	m := New(nil, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = m.Shutdown(ctx)
	}()

	wantErr := assert.AnError
	err := m.Execute(context.Background(), "page:1", func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
