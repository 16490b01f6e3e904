package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookieName はカートセッションIDのCookie
	SessionCookieName = "cart_session"
	// SessionHeader はCookieが使えないクライアント向けのヘッダ
	SessionHeader = "X-Cart-Session"

	DefaultIdleTTL   = 30 * time.Minute
	DefaultMaxStores = 10000
)

type openStore struct {
	store    *Store
	lastUsed time.Time
}

// Sessions はセッションIDごとの Store を遅延で開いて保持する。
// 一定時間使われない Store は手放す（中身は Persister に残っている）。
// 上限に達したら一番古いものから手放す。
type Sessions struct {
	mu        sync.Mutex
	persister Persister
	stores    map[string]*openStore
	idleTTL   time.Duration
	maxStores int
	now       func() time.Time
}

type SessionOption func(*Sessions)

func WithIdleTTL(d time.Duration) SessionOption {
	return func(s *Sessions) { s.idleTTL = d }
}

func WithMaxStores(n int) SessionOption {
	return func(s *Sessions) { s.maxStores = n }
}

// テスト用
func WithClock(now func() time.Time) SessionOption {
	return func(s *Sessions) { s.now = now }
}

func NewSessions(p Persister, opts ...SessionOption) *Sessions {
	s := &Sessions{
		persister: p,
		stores:    map[string]*openStore{},
		idleTTL:   DefaultIdleTTL,
		maxStores: DefaultMaxStores,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.maxStores < 1 {
		s.maxStores = 1
	}
	return s
}

// NewSessionID は新しいセッションIDを発行する
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID はUUID形式かどうか
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get はセッションの Store を返す。保持していなければ Persister から読む。
func (s *Sessions) Get(ctx context.Context, sessionID string) (*Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.stores[sessionID]; ok {
		e.lastUsed = now
		return e.store, nil
	}

	st, err := Open(ctx, s.persister, sessionID)
	if err != nil {
		return nil, err
	}
	s.evictLocked(now)
	s.stores[sessionID] = &openStore{store: st, lastUsed: now}
	return st, nil
}

// Peek は Store を保持せずに中身だけ返す。読み取り専用のリクエスト向け。
func (s *Sessions) Peek(ctx context.Context, sessionID string) ([]Item, error) {
	s.mu.Lock()
	if e, ok := s.stores[sessionID]; ok {
		e.lastUsed = s.now()
		s.mu.Unlock()
		return e.store.Items(), nil
	}
	s.mu.Unlock()

	st, err := Open(ctx, s.persister, sessionID)
	if err != nil {
		return nil, err
	}
	return st.Items(), nil
}

// Len は保持中の Store の数
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// 期限切れを捨て、それでも満杯なら一番古いものを捨てる
func (s *Sessions) evictLocked(now time.Time) {
	if s.idleTTL > 0 {
		for id, e := range s.stores {
			if now.Sub(e.lastUsed) > s.idleTTL {
				delete(s.stores, id)
			}
		}
	}
	for len(s.stores) >= s.maxStores {
		var oldestID string
		var oldest time.Time
		for id, e := range s.stores {
			if oldestID == "" || e.lastUsed.Before(oldest) {
				oldestID, oldest = id, e.lastUsed
			}
		}
		delete(s.stores, oldestID)
	}
}
