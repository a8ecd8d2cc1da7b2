package fraud

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 内存版 HistoryStore，用于测试与无持久化存储时的降级运行
type MemoryStore struct {
	mu        sync.Mutex
	retention time.Duration
	records   []SubmissionRecord
	block     *BlockRecord
}

func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{retention: retention}
}

func (s *MemoryStore) Load(_ context.Context) []SubmissionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SubmissionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemoryStore) Append(_ context.Context, record SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = TrimExpired(s.records, s.retention, time.Now())
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

func (s *MemoryStore) Block(_ context.Context) *BlockRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.block == nil {
		return nil
	}
	out := *s.block
	return &out
}

func (s *MemoryStore) SetBlock(_ context.Context, record BlockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.block = &record
	return nil
}

func (s *MemoryStore) ClearBlock(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.block = nil
	return nil
}
