package streak

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
	"github.com/flowva/rewards-api/internal/pkg/clock"
)

// memoryRepo mimics the conditional upsert of the Postgres repository.
type memoryRepo struct {
	mu      sync.Mutex
	states  map[uuid.UUID]State
	entries []ledger.Transaction
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{states: map[uuid.UUID]State{}}
}

func (m *memoryRepo) Get(_ context.Context, userID uuid.UUID) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[userID]; ok {
		return s, nil
	}
	return State{UserID: userID}, nil
}

func (m *memoryRepo) SaveClaim(_ context.Context, prev, next State, entry *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.states[next.UserID]
	if !sameDate(cur.LastClaimedDate, prev.LastClaimedDate) {
		return ledger.ErrAlreadyClaimed
	}
	if cur.LastClaimedDate != nil && !next.LastClaimedDate.After(*cur.LastClaimedDate) {
		return ledger.ErrAlreadyClaimed
	}
	m.states[next.UserID] = next
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryRepo) InitTx(context.Context, *sqlx.Tx, uuid.UUID) error { return nil }

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

type recordingNotifier struct {
	mu      sync.Mutex
	reasons []ledger.Kind
}

func (n *recordingNotifier) PointsUpdated(_ context.Context, _ uuid.UUID, reason ledger.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
}

func TestServiceClaimAppendsLedgerEntry(t *testing.T) {
	repo := newMemoryRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, clock.Real{}, time.UTC, notifier, nil)
	userID := uuid.New()

	result, err := svc.Claim(context.Background(), userID, day(2026, 3, 1))
	require.NoError(t, err)
	require.Equal(t, 1, result.CurrentStreak)
	require.Equal(t, 5, result.PointsAwarded)
	require.Equal(t, "2026-03-01", result.LastClaimedDate)

	require.Len(t, repo.entries, 1)
	require.Equal(t, ledger.KindStreak, repo.entries[0].Kind)
	require.Equal(t, 5, repo.entries[0].PointsDelta)
	require.Equal(t, "Daily streak bonus - Day 1", repo.entries[0].Description)
	require.Equal(t, []ledger.Kind{ledger.KindStreak}, notifier.reasons)
}

func TestServiceSecondClaimSameDay(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil, nil)
	userID := uuid.New()

	_, err := svc.Claim(context.Background(), userID, day(2026, 3, 1))
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), userID, day(2026, 3, 1))
	require.ErrorIs(t, err, ledger.ErrAlreadyClaimed)

	state, _ := repo.Get(context.Background(), userID)
	require.Equal(t, 1, state.CurrentStreak)
	require.Len(t, repo.entries, 1)
}

func TestServiceConcurrentClaimsAwardOnce(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil, nil, nil)
	userID := uuid.New()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Claim(context.Background(), userID, day(2026, 3, 1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, ledger.ErrAlreadyClaimed)
		}
	}
	require.Equal(t, 1, ok)
	require.Len(t, repo.entries, 1)
}

func TestServiceRequiresUser(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil, nil, nil)
	_, err := svc.Claim(context.Background(), uuid.Nil, day(2026, 3, 1))
	require.ErrorIs(t, err, ledger.ErrAuthenticationRequired)
}

func TestServiceTodayUsesTimezone(t *testing.T) {
	// 2026-03-10 02:00 UTC is still March 9 in New York
	fixed := clock.Fixed(time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC))
	svc := NewService(newMemoryRepo(), fixed, time.UTC, nil, nil)

	require.Equal(t, day(2026, 3, 10), svc.Today(""))
	require.Equal(t, day(2026, 3, 9), svc.Today("America/New_York"))
	require.Equal(t, day(2026, 3, 10), svc.Today("Not/AZone"))
}

func TestServiceAlternatingTimezonesClaimOnce(t *testing.T) {
	// UTC+14 sees March 10 as the 11th, UTC-12 still sees the 9th
	fixed := clock.Fixed(time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC))
	repo := newMemoryRepo()
	svc := NewService(repo, fixed, time.UTC, nil, nil)
	userID := uuid.New()

	ok := 0
	for i := 0; i < 10; i++ {
		zone := "Pacific/Kiritimati"
		if i%2 == 1 {
			zone = "Etc/GMT+12"
		}
		_, err := svc.Claim(context.Background(), userID, svc.Today(zone))
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, ledger.ErrAlreadyClaimed)
	}

	require.Equal(t, 1, ok)
	require.Len(t, repo.entries, 1)
	state, _ := repo.Get(context.Background(), userID)
	require.True(t, state.LastClaimedDate.Equal(day(2026, 3, 11)))
}

func TestHandlerStatusAndClaim(t *testing.T) {
	fixed := clock.Fixed(time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)) // Wednesday
	svc := NewService(newMemoryRepo(), fixed, time.UTC, nil, nil)
	h := NewHandler(svc)
	userID := uuid.New()

	do := func(method, path string, fn http.HandlerFunc) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "user"))
		w := httptest.NewRecorder()
		fn(w, req)
		return w
	}

	w := do(http.MethodGet, "/streak", h.Status)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Data Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	require.True(t, status.Data.CanClaimToday)
	require.Equal(t, 2, status.Data.WeekdayIndex)
	require.Nil(t, status.Data.LastClaimedDate)

	w = do(http.MethodPost, "/streak/claim", h.Claim)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodPost, "/streak/claim", h.Claim)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ALREADY_CLAIMED")
}
