package reward

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/flowva/rewards-api/internal/domain/ledger"
	"github.com/flowva/rewards-api/internal/middleware"
)

// memoryRepo keeps catalog, redemptions and the ledger in memory. Redeem holds
// a single mutex to mirror the per-user advisory lock.
type memoryRepo struct {
	mu          sync.Mutex
	rewards     map[uuid.UUID]*Reward
	redemptions []Redemption
	ledger      []ledger.Transaction
	listCalls   int
}

func newMemoryRepo(rewards ...Reward) *memoryRepo {
	m := &memoryRepo{rewards: map[uuid.UUID]*Reward{}}
	for i := range rewards {
		r := rewards[i]
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		m.rewards[r.ID] = &r
	}
	return m
}

func (m *memoryRepo) credit(userID uuid.UUID, points int) {
	m.ledger = append(m.ledger, *ledger.NewTransaction(userID, ledger.KindSignup, points, "seed"))
}

func (m *memoryRepo) balance(userID uuid.UUID) int {
	var txs []ledger.Transaction
	for _, t := range m.ledger {
		if t.UserID == userID {
			txs = append(txs, t)
		}
	}
	return ledger.ComputeBalance(txs)
}

func (m *memoryRepo) Balance(_ context.Context, userID uuid.UUID) (*ledger.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.balance(userID)
	return &ledger.Summary{Balance: b, Progress: ledger.ProgressFor(b)}, nil
}

func (m *memoryRepo) List(context.Context) ([]Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := make([]Reward, 0, len(m.rewards))
	for _, r := range m.rewards {
		out = append(out, *r)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].PointsCost < out[j-1].PointsCost; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rewards[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRepo) Create(_ context.Context, r *Reward) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.New()
	cp := *r
	m.rewards[r.ID] = &cp
	return nil
}

func (m *memoryRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rewards[id]
	if !ok {
		return ledger.ErrNotFound
	}
	r.Status = status
	return nil
}

func (m *memoryRepo) UpdateIcon(_ context.Context, id uuid.UUID, iconURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rewards[id]
	if !ok {
		return ledger.ErrNotFound
	}
	r.IconURL = &iconURL
	return nil
}

func (m *memoryRepo) Redeem(_ context.Context, userID, rewardID uuid.UUID, check CheckFunc) (*Redemption, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rewards[rewardID]
	if !ok {
		return nil, 0, ledger.ErrNotFound
	}
	next, err := check(*r, m.balance(userID))
	if err != nil {
		return nil, 0, err
	}
	red := Redemption{ID: uuid.New(), UserID: userID, RewardID: r.ID, RewardTitle: r.Title, PointsSpent: r.PointsCost, Status: RedemptionPending}
	m.redemptions = append(m.redemptions, red)
	m.ledger = append(m.ledger, *ledger.NewTransaction(userID, ledger.KindManual, -r.PointsCost, Description(*r)))
	return &red, next, nil
}

func (m *memoryRepo) ListRedemptions(_ context.Context, userID uuid.UUID) ([]Redemption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Redemption
	for _, r := range m.redemptions {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memoryCache struct {
	rewards     []Reward
	ok          bool
	invalidated int
}

func (c *memoryCache) Get(context.Context) ([]Reward, bool) { return c.rewards, c.ok }

func (c *memoryCache) Set(_ context.Context, r []Reward) {
	c.rewards, c.ok = r, true
}

func (c *memoryCache) Invalidate(context.Context) {
	c.rewards, c.ok = nil, false
	c.invalidated++
}

type memoryStorage struct {
	objects map[string][]byte
}

func (s *memoryStorage) Put(_ context.Context, key string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) GetURL(key string) string { return "https://cdn.test/" + key }

func TestServiceRedeemDebitsLedger(t *testing.T) {
	mug := Reward{ID: uuid.New(), Title: "Mug", PointsCost: 100, Status: StatusActive}
	repo := newMemoryRepo(mug)
	userID := uuid.New()
	repo.credit(userID, 150)
	svc := NewService(repo, repo, Deps{})

	result, err := svc.Redeem(context.Background(), userID, mug.ID)
	require.NoError(t, err)
	require.Equal(t, 50, result.Balance)
	require.Equal(t, RedemptionPending, result.Redemption.Status)
	require.Equal(t, 50, repo.balance(userID))

	last := repo.ledger[len(repo.ledger)-1]
	require.Equal(t, ledger.KindManual, last.Kind)
	require.Equal(t, -100, last.PointsDelta)
	require.Equal(t, "Redeemed: Mug", last.Description)

	_, err = svc.Redeem(context.Background(), userID, mug.ID)
	require.ErrorIs(t, err, ledger.ErrInsufficientPoints)
	require.Len(t, repo.redemptions, 1)
}

func TestServiceRedeemComingSoon(t *testing.T) {
	trip := Reward{ID: uuid.New(), Title: "Trip", PointsCost: 100, Status: StatusComingSoon}
	repo := newMemoryRepo(trip)
	userID := uuid.New()
	repo.credit(userID, 500)

	_, err := NewService(repo, repo, Deps{}).Redeem(context.Background(), userID, trip.ID)
	require.ErrorIs(t, err, ledger.ErrNotRedeemable)
	require.Equal(t, 500, repo.balance(userID))
}

func TestServiceConcurrentRedeemsNeverOverdraw(t *testing.T) {
	mug := Reward{ID: uuid.New(), Title: "Mug", PointsCost: 100, Status: StatusActive}
	repo := newMemoryRepo(mug)
	userID := uuid.New()
	repo.credit(userID, 250)
	svc := NewService(repo, repo, Deps{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Redeem(context.Background(), userID, mug.ID)
		}()
	}
	wg.Wait()

	require.Len(t, repo.redemptions, 2)
	require.Equal(t, 50, repo.balance(userID))
}

func TestServiceCatalogUsesCache(t *testing.T) {
	repo := newMemoryRepo(
		Reward{Title: "Mug", PointsCost: 100, Status: StatusActive},
		Reward{Title: "Sticker", PointsCost: 10, Status: StatusActive},
	)
	userID := uuid.New()
	repo.credit(userID, 50)
	cache := &memoryCache{}
	svc := NewService(repo, repo, Deps{Cache: cache})

	catalog, err := svc.Catalog(context.Background(), userID, "")
	require.NoError(t, err)
	require.Equal(t, FilterAll, catalog.Filter)
	require.Equal(t, 50, catalog.Balance)
	require.Equal(t, "Sticker", catalog.Items[0].Title)
	require.Equal(t, Counts{All: 2, Unlocked: 1, Locked: 1}, catalog.Counts)

	_, err = svc.Catalog(context.Background(), userID, FilterLocked)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = svc.Create(context.Background(), &CreateRewardRequest{Title: "Hoodie", PointsCost: 900, Status: "coming_soon"})
	require.NoError(t, err)
	require.Equal(t, 1, cache.invalidated)

	catalog, err = svc.Catalog(context.Background(), userID, FilterComingSoon)
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)
	require.Len(t, catalog.Items, 1)
}

func TestServiceSetStatus(t *testing.T) {
	r := Reward{ID: uuid.New(), Title: "Mug", PointsCost: 100, Status: StatusComingSoon}
	svc := NewService(newMemoryRepo(r), nil, Deps{})

	updated, err := svc.SetStatus(context.Background(), r.ID, StatusActive)
	require.NoError(t, err)
	require.Equal(t, StatusActive, updated.Status)

	_, err = svc.SetStatus(context.Background(), r.ID, Status("archived"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(context.Background(), uuid.New(), StatusActive)
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestServiceUploadIcon(t *testing.T) {
	r := Reward{ID: uuid.New(), Title: "Mug", PointsCost: 100, Status: StatusActive}
	store := &memoryStorage{objects: map[string][]byte{}}

	_, err := NewService(newMemoryRepo(r), nil, Deps{}).UploadIcon(context.Background(), r.ID, strings.NewReader("x"))
	require.ErrorIs(t, err, ErrStorageDisabled)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 300, 120))))

	svc := NewService(newMemoryRepo(r), nil, Deps{Storage: store})
	updated, err := svc.UploadIcon(context.Background(), r.ID, &buf)
	require.NoError(t, err)
	require.NotNil(t, updated.IconURL)
	require.True(t, strings.HasPrefix(*updated.IconURL, "https://cdn.test/rewards/"+r.ID.String()+"/icon-"))
	require.Len(t, store.objects, 1)

	_, err = svc.UploadIcon(context.Background(), r.ID, strings.NewReader("definitely not an image"))
	require.ErrorIs(t, err, ErrInvalidIcon)
}

func TestHandlerRedeemMapsErrors(t *testing.T) {
	mug := Reward{ID: uuid.New(), Title: "Mug", PointsCost: 100, Status: StatusActive}
	repo := newMemoryRepo(mug)
	userID := uuid.New()
	repo.credit(userID, 50)
	h := NewHandler(NewService(repo, repo, Deps{}))

	router := chi.NewRouter()
	router.Mount("/rewards", h.Routes(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), userID, "user")))
		})
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rewards/"+mug.ID.String()+"/redeem", nil))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "INSUFFICIENT_POINTS")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rewards/"+uuid.NewString()+"/redeem", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rewards?filter=bogus", nil))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rewards?filter=locked", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data CatalogResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 1)
	require.Equal(t, Locked, body.Data.Items[0].Availability)
}
