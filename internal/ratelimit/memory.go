package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryConfig はインメモリリミッターの設定を保持する。
type MemoryConfig struct {
	Limit           int           // ウィンドウあたりの許可リクエスト数
	Window          time.Duration // クォータウィンドウの長さ
	CleanupInterval time.Duration // アイドルエントリのクリーンアップ間隔
}

// DefaultMemoryConfig はデフォルト設定（3リクエスト/1時間）を返す。
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Limit:           DefaultLimit,
		Window:          DefaultWindow,
		CleanupInterval: 10 * time.Minute,
	}
}

// clientLimiter は識別子ごとのトークンバケットとアクセス時刻を保持する。
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Memory は単一プロセス内で動作するリミッター。
// 識別子ごとにトークンバケット（バースト=Limit、補充速度=Limit/Window）を管理し、
// ウィンドウ内のLimit+1回目のリクエストを拒否する。
// 外部ストアを持たないため、複数レプリカ構成ではクォータがレプリカごとに
// 分かれる点に注意。
type Memory struct {
	config MemoryConfig

	mu       sync.RWMutex
	limiters map[string]*clientLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemory は新しいMemoryリミッターを生成し、
// バックグラウンドでアイドルエントリのクリーンアップを開始する。
func NewMemory(config MemoryConfig) *Memory {
	m := &Memory{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (m *Memory) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

// Allow は識別子のリクエストを許可してよいかを返す。エラーは返さない。
func (m *Memory) Allow(ctx context.Context, identifier string) (bool, error) {
	return m.getOrCreate(identifier).Allow(), nil
}

// EntryCount は現在管理されているエントリ数を返す。テストおよびメトリクス用。
func (m *Memory) EntryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.limiters)
}

// getOrCreate は識別子のトークンバケットを取得または作成する。
func (m *Memory) getOrCreate(identifier string) *rate.Limiter {
	m.mu.RLock()
	cl, exists := m.limiters[identifier]
	m.mu.RUnlock()

	if exists {
		m.mu.Lock()
		cl.lastAccess = time.Now()
		m.mu.Unlock()
		return cl.limiter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// ダブルチェック
	if cl, exists := m.limiters[identifier]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(
		rate.Limit(float64(m.config.Limit)/m.config.Window.Seconds()),
		m.config.Limit,
	)
	m.limiters[identifier] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop はバックグラウンドでアイドルエントリを定期的にクリーンアップする。
func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stopCh:
			return
		}
	}
}

// cleanup は最終アクセスからウィンドウ1周分が経過したエントリを削除する。
// ウィンドウ1周アイドルだったバケットはトークンが満タンまで補充されているため、
// 削除してもクォータの意味は変わらない。
func (m *Memory) cleanup() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for identifier, cl := range m.limiters {
		if now.Sub(cl.lastAccess) > m.config.Window {
			delete(m.limiters, identifier)
		}
	}
}

// compile-time interface check
var _ Limiter = (*Memory)(nil)
