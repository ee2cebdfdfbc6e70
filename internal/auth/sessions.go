package auth

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/EmpoweredVote/roster-backend/internal/apperr"
	"github.com/EmpoweredVote/roster-backend/internal/utils"
	"github.com/allegro/bigcache/v3"
	"gorm.io/gorm"
)

// SessionStore maps opaque tokens to sessions. Implementations must be safe
// for concurrent use.
type SessionStore interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (Session, error)
	Find(ctx context.Context, token string) (Session, error)
	Destroy(ctx context.Context, token string) error
}

type DBSessionStore struct {
	db *gorm.DB
}

func NewDBSessionStore(conn *gorm.DB) *DBSessionStore {
	return &DBSessionStore{db: conn}
}

func (s *DBSessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (Session, error) {
	session := Session{
		Token:     utils.GenerateToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *DBSessionStore) Find(ctx context.Context, token string) (Session, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, apperr.NotFound("Session not found")
	}
	return session, err
}

func (s *DBSessionStore) Destroy(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "token = ?", token).Error
}

// PurgeExpired removes sessions past their expiry and reports how many went.
func (s *DBSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}

// MemorySessionStore keeps sessions in process. Entries are evicted by
// bigcache once maxTTL has elapsed; per-session expiry is still checked by
// the caller against ExpiresAt.
type MemorySessionStore struct {
	cache *bigcache.BigCache
}

func NewMemorySessionStore(ctx context.Context, maxTTL time.Duration) (*MemorySessionStore, error) {
	cfg := bigcache.DefaultConfig(maxTTL)
	cfg.CleanWindow = time.Minute
	cfg.Verbose = false
	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init session cache: %w", err)
	}
	return &MemorySessionStore{cache: cache}, nil
}

func (m *MemorySessionStore) Create(ctx context.Context, userID uint, ttl time.Duration) (Session, error) {
	session := Session{
		Token:     utils.GenerateToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	if err := m.cache.Set(session.Token, encodeSession(session)); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (m *MemorySessionStore) Find(ctx context.Context, token string) (Session, error) {
	buf, err := m.cache.Get(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return Session{}, apperr.NotFound("Session not found")
	}
	if err != nil {
		return Session{}, err
	}
	session, ok := decodeSession(buf)
	if !ok {
		return Session{}, apperr.NotFound("Session not found")
	}
	session.Token = token
	return session, nil
}

func (m *MemorySessionStore) Destroy(ctx context.Context, token string) error {
	err := m.cache.Delete(token)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (m *MemorySessionStore) Close() error {
	return m.cache.Close()
}

// entry layout: user id, expiry unix nanos, created unix nanos
func encodeSession(s Session) []byte {
	buf := make([]byte, 24)
	binary.BigEndian.PutUint64(buf[0:8], uint64(s.UserID))
	binary.BigEndian.PutUint64(buf[8:16], uint64(s.ExpiresAt.UnixNano()))
	binary.BigEndian.PutUint64(buf[16:24], uint64(s.CreatedAt.UnixNano()))
	return buf
}

func decodeSession(buf []byte) (Session, bool) {
	if len(buf) != 24 {
		return Session{}, false
	}
	return Session{
		UserID:    uint(binary.BigEndian.Uint64(buf[0:8])),
		ExpiresAt: time.Unix(0, int64(binary.BigEndian.Uint64(buf[8:16]))),
		CreatedAt: time.Unix(0, int64(binary.BigEndian.Uint64(buf[16:24]))),
	}, true
}
