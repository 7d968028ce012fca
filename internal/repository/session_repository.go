package repository

import (
	"sync"
	"time"
	"wordquiz_backend/internal/model"
	"wordquiz_backend/internal/util"
)

// entry 包装会话和它的互斥锁。lastSeen 只在持有仓库级锁时读写，
// 清理协程和访问路径因此共用同一把锁，互不竞争。
type entry struct {
	mu       sync.Mutex
	session  *model.QuizSession
	lastSeen time.Time
}

// SessionRepository 进程内会话注册表。
// 不同会话的操作互不阻塞；同一会话的 check→mutate→advance 序列
// 由每个会话自己的锁串行化。
type SessionRepository struct {
	mu         sync.Mutex
	sessions   map[string]*entry
	ttl        time.Duration
	sweepEvery time.Duration
	stop       chan struct{}
}

// NewSessionRepository 创建会话存储。ttl > 0 时启动清理协程，
// 超过 ttl 未活跃的会话被逐出。
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return newSessionRepository(ttl, time.Minute)
}

func newSessionRepository(ttl, sweepEvery time.Duration) *SessionRepository {
	r := &SessionRepository{
		sessions:   make(map[string]*entry),
		ttl:        ttl,
		sweepEvery: sweepEvery,
		stop:       make(chan struct{}),
	}

	if ttl > 0 {
		go r.sweep()
	}

	return r
}

func (r *SessionRepository) sweep() {
	ticker := time.NewTicker(r.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			for id, e := range r.sessions {
				if time.Since(e.lastSeen) > r.ttl {
					delete(r.sessions, id)
				}
			}
			r.mu.Unlock()
		case <-r.stop:
			return
		}
	}
}

func (r *SessionRepository) Close() {
	close(r.stop)
}

func (r *SessionRepository) Save(s *model.QuizSession) {
	r.mu.Lock()
	r.sessions[s.ID] = &entry{session: s, lastSeen: time.Now()}
	r.mu.Unlock()
}

// With 在持有该会话锁的情况下执行 fn。fn 内不做任何 I/O，
// 音频解析等慢操作必须在调用方拿到数据副本后再做。
func (r *SessionRepository) With(id string, fn func(*model.QuizSession) error) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		e.lastSeen = time.Now()
	}
	r.mu.Unlock()
	if !ok {
		return util.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
