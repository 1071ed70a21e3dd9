package app

import (
	"context"
	"sync"
)

// Stream 可取消的即時訂閱。Updates 先收到初始快照，之後每次底層資料變更
// 再收到一份新快照。Cancel 後不再派送並關閉 channel，底層 listener 一併釋放
type Stream[T any] struct {
	mu      sync.Mutex
	updates chan T
	err     error
	closed  bool
	pushed  bool
	cancel  context.CancelFunc
}

func newStream[T any](cancel context.CancelFunc) *Stream[T] {
	return &Stream[T]{
		// cap 1: consumer 落後時只保留最新快照
		updates: make(chan T, 1),
		cancel:  cancel,
	}
}

// Updates snapshot channel，stream 結束時關閉
func (s *Stream[T]) Updates() <-chan T {
	return s.updates
}

// Err 串流因底層錯誤終止時回傳該錯誤，正常 Cancel 回傳 nil
func (s *Stream[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel 停止派送並釋放訂閱，可重複呼叫
func (s *Stream[T]) Cancel() {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.updates)
}

// push 替換未被消費的舊快照，Cancel 後丟棄
func (s *Stream[T]) push(snapshot T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pushed = true
	select {
	case <-s.updates:
	default:
	}
	s.updates <- snapshot
}

// pushInitial 只在還沒有任何快照派送過時才推。先訂閱後查初始快照時，
// 訂閱 handler 可能已搶先推了較新的一份，這時初始快照直接丟棄
func (s *Stream[T]) pushInitial(snapshot T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.pushed {
		return
	}
	s.pushed = true
	s.updates <- snapshot
}

// fail 記下錯誤後終止串流 (訂閱錯誤不能吞掉，caller 用 Err 取得)
func (s *Stream[T]) fail(err error) {
	s.mu.Lock()
	if !s.closed {
		s.err = err
	}
	s.mu.Unlock()
	s.Cancel()
}
