package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/six_jars_app/internal/core/ports/repositories"
)

// DefaultSnapshotDebounce is how long after the last write a snapshot is saved.
const DefaultSnapshotDebounce = 2 * time.Second

const saveTimeout = 30 * time.Second

// SessionStore keeps one in-memory ledger per user. Operations for the same user run one
// at a time under the session lock; the ledger is loaded by the first operation and saved
// in the background, debounced, after writes.
type SessionStore struct {
	repo     portsrepo.SnapshotRepositoryFacade
	debounce time.Duration
	logger   *slog.Logger
	bookOpts []ledger.Option

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	userID string
	mu     sync.Mutex
	book   *ledger.Book // nil until loaded
	saver  *debouncer
	saveMu sync.Mutex
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithSnapshotDebounce sets the write-back delay.
func WithSnapshotDebounce(d time.Duration) SessionOption {
	return func(s *SessionStore) {
		s.debounce = d
	}
}

// WithSessionLogger sets the logger used by background saves.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *SessionStore) {
		s.logger = logger
	}
}

// WithBookOptions passes options to every ledger the store creates.
func WithBookOptions(opts ...ledger.Option) SessionOption {
	return func(s *SessionStore) {
		s.bookOpts = append(s.bookOpts, opts...)
	}
}

// NewSessionStore creates a session store persisting through repo.
func NewSessionStore(repo portsrepo.SnapshotRepositoryFacade, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		repo:     repo,
		debounce: DefaultSnapshotDebounce,
		logger:   slog.Default(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View runs fn against the user's ledger without scheduling a save.
func (s *SessionStore) View(ctx context.Context, id domain.Identity, fn func(*ledger.Book) error) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.ensureLoaded(ctx, sess); err != nil {
		return err
	}
	return fn(sess.book)
}

// Mutate runs fn against the user's ledger and schedules a save when fn changed it.
// fn's error is returned as is.
func (s *SessionStore) Mutate(ctx context.Context, id domain.Identity, fn func(*ledger.Book) error) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.ensureLoaded(ctx, sess); err != nil {
		return err
	}
	before := sess.book.Version()
	err = fn(sess.book)
	if sess.book.Version() != before {
		sess.saver.Trigger()
	}
	return err
}

// Flush saves every session with a pending write. It is called on shutdown.
func (s *SessionStore) Flush(ctx context.Context) {
	s.mu.Lock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.Unlock()

	flushed := 0
	for _, sess := range all {
		if sess.saver.Flush() {
			flushed++
		}
	}
	s.logger.InfoContext(ctx, "Flushed pending snapshots", slog.Int("count", flushed))
}

func (s *SessionStore) session(id domain.Identity) (*session, error) {
	if id.UserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !id.Verified {
		return nil, apperrors.ErrUnverified
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id.UserID]
	if !ok {
		sess = &session{userID: id.UserID}
		sess.saver = newDebouncer(s.debounce, func() { s.save(sess) })
		s.sessions[id.UserID] = sess
	}
	return sess, nil
}

// ensureLoaded must be called with sess.mu held.
func (s *SessionStore) ensureLoaded(ctx context.Context, sess *session) error {
	if sess.book != nil {
		return nil
	}
	snap, err := s.repo.LoadSnapshot(ctx, sess.userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load ledger snapshot", slog.String("user_id", sess.userID), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", apperrors.ErrLedgerNotLoaded, err)
	}
	sess.book = ledger.FromSnapshot(snap, s.bookOpts...)
	if _, ok := sess.book.Reconcile(); !ok {
		s.logger.WarnContext(ctx, "Loaded balances do not match transaction history", slog.String("user_id", sess.userID))
	}
	s.logger.InfoContext(ctx, "Ledger loaded",
		slog.String("user_id", sess.userID),
		slog.Int("transactions", len(sess.book.Transactions())),
		slog.Bool("first_run", snap == nil))
	return nil
}

// save snapshots the session under its lock and writes it out. Failures are logged; the
// next write schedules another attempt.
func (s *SessionStore) save(sess *session) {
	sess.saveMu.Lock()
	defer sess.saveMu.Unlock()

	sess.mu.Lock()
	if sess.book == nil {
		sess.mu.Unlock()
		return
	}
	snap := sess.book.Snapshot()
	sess.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	start := time.Now()
	if err := s.repo.SaveSnapshot(ctx, sess.userID, snap); err != nil {
		s.logger.Error("Failed to save ledger snapshot", slog.String("user_id", sess.userID), slog.String("error", err.Error()))
		return
	}
	s.logger.Debug("Ledger snapshot saved", slog.String("user_id", sess.userID), slog.Duration("took", time.Since(start)))
}
