// Package store 提供 fraud.HistoryStore 的持久化实现。
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ig-reward-gate/internal/fraud"
)

// FileStore 以单个 JSON 文件按设备持久化提交历史与封禁状态。
// 读路径对缺失和损坏一律宽松处理：解析失败视同文件不存在，
// 绝不让坏数据拖垮风控检查。
type FileStore struct {
	mu        sync.Mutex
	file      string
	retention time.Duration
}

type stateFile struct {
	Submissions []fraud.SubmissionRecord `json:"submissions"`
	Block       *fraud.BlockRecord       `json:"block,omitempty"`
}

func NewFileStore(dataDir, deviceID string, retention time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	return &FileStore{
		file:      filepath.Join(dataDir, "device_"+deviceID+".json"),
		retention: retention,
	}, nil
}

func (s *FileStore) Load(_ context.Context) []fraud.SubmissionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read().Submissions
}

func (s *FileStore) Append(_ context.Context, record fraud.SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.read()
	state.Submissions = fraud.TrimExpired(state.Submissions, s.retention, time.Now())
	state.Submissions = append(state.Submissions, record)
	return s.write(state)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.read()
	state.Submissions = nil
	return s.write(state)
}

func (s *FileStore) Block(_ context.Context) *fraud.BlockRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read().Block
}

func (s *FileStore) SetBlock(_ context.Context, record fraud.BlockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.read()
	state.Block = &record
	return s.write(state)
}

func (s *FileStore) ClearBlock(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.read()
	state.Block = nil
	return s.write(state)
}

// read 文件缺失或 JSON 损坏时返回空状态
func (s *FileStore) read() stateFile {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return stateFile{}
	}

	var state stateFile
	if err := json.Unmarshal(data, &state); err != nil {
		return stateFile{}
	}
	return state
}

func (s *FileStore) write(state stateFile) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("编码状态文件失败: %w", err)
	}

	if err := os.WriteFile(s.file, data, 0o600); err != nil {
		return fmt.Errorf("写入状态文件失败: %w", err)
	}
	return nil
}
