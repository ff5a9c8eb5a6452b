package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/person-directory/internal/models"
	"github.com/biyonik/person-directory/internal/repositories"
	"github.com/biyonik/person-directory/pkg/cache"
	"github.com/biyonik/person-directory/pkg/testutil"
)

// fakeRepo, her metot çağrısını sayan PersonRepository.
type fakeRepo struct {
	mu      sync.Mutex
	calls   map[string]int
	persons []models.Person
	err     error
	lastCtx context.Context
	lastN   int
}

func newFakeRepo(persons ...models.Person) *fakeRepo {
	return &fakeRepo{calls: map[string]int{}, persons: persons}
}

func (f *fakeRepo) record(ctx context.Context, name string) ([]models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	f.lastCtx = ctx
	return f.persons, f.err
}

func (f *fakeRepo) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRepo) ListProjected(ctx context.Context) ([]models.Person, error) {
	return f.record(ctx, "projected")
}
func (f *fakeRepo) ListSwitched(ctx context.Context) ([]models.Person, error) {
	return f.record(ctx, "switched")
}
func (f *fakeRepo) ListTop(ctx context.Context, n int) ([]models.Person, error) {
	persons, err := f.record(ctx, "top")
	f.mu.Lock()
	f.lastN = n
	f.mu.Unlock()
	if len(persons) > n {
		persons = persons[:n]
	}
	return persons, err
}
func (f *fakeRepo) ListByProcedure(ctx context.Context) ([]models.Person, error) {
	return f.record(ctx, "procedure")
}
func (f *fakeRepo) ListWithPhones(ctx context.Context) ([]models.Person, error) {
	return f.record(ctx, "phones")
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (models.Person, error) {
	persons, err := f.record(ctx, "email")
	if err != nil {
		return models.Person{}, err
	}
	for _, p := range persons {
		if p.Email == email {
			return p, nil
		}
	}
	return models.Person{}, repositories.ErrPersonNotFound
}
func (f *fakeRepo) Ping(ctx context.Context) error {
	_, err := f.record(ctx, "ping")
	return err
}

var ada = models.Person{PersonID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

func newService(t *testing.T, repo repositories.PersonRepository, opts Options) (*PersonService, cache.Cache) {
	t.Helper()
	c, err := cache.New(cache.DriverMemory, nil, testutil.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return NewPersonService(repo, c, testutil.DiscardLogger(), opts), c
}

func TestPersonService_CachesLists(t *testing.T) {
	repo := newFakeRepo(ada)
	svc, c := newService(t, repo, Options{TTL: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		persons, err := svc.ByProcedure(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Person{ada}, persons)
	}
	assert.Equal(t, 1, repo.count("procedure"))

	has, err := c.Has(ctx, KeyProcedure)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestPersonService_VariantsUseSeparateKeys(t *testing.T) {
	repo := newFakeRepo(ada)
	svc, _ := newService(t, repo, Options{})
	ctx := context.Background()

	_, err := svc.Projected(ctx)
	require.NoError(t, err)
	_, err = svc.Switched(ctx)
	require.NoError(t, err)
	_, err = svc.WithPhones(ctx)
	require.NoError(t, err)
	_, err = svc.Top(ctx, 0)
	require.NoError(t, err)
	_, err = svc.Top(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.count("projected"))
	assert.Equal(t, 1, repo.count("switched"))
	assert.Equal(t, 1, repo.count("phones"))
	assert.Equal(t, 1, repo.count("top"), "Top(0) uses the default count")
}

func TestPersonService_EmptyListIsNotNil(t *testing.T) {
	svc, _ := newService(t, newFakeRepo(), Options{})

	persons, err := svc.Switched(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, persons)
	assert.Empty(t, persons)
}

func TestPersonService_ErrorsAreNotCached(t *testing.T) {
	repo := newFakeRepo(ada)
	repo.err = errors.New("db down")
	svc, _ := newService(t, repo, Options{})
	ctx := context.Background()

	_, err := svc.ByProcedure(ctx)
	assert.Error(t, err)

	repo.err = nil
	persons, err := svc.ByProcedure(ctx)
	require.NoError(t, err)
	assert.Len(t, persons, 1)
	assert.Equal(t, 2, repo.count("procedure"))
}

func TestPersonService_Lean(t *testing.T) {
	svc, _ := newService(t, newFakeRepo(ada), Options{})

	lean, err := svc.Lean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.PersonSummary{{FirstName: "Ada", LastName: "Lovelace"}}, lean)
}

func TestPersonService_LeanPerson(t *testing.T) {
	svc, _ := newService(t, newFakeRepo(ada), Options{})
	ctx := context.Background()

	summary, err := svc.LeanPerson(ctx, " ada@example.com ")
	require.NoError(t, err)
	assert.Equal(t, models.PersonSummary{FirstName: "Ada", LastName: "Lovelace"}, summary)

	_, err = svc.LeanPerson(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repositories.ErrPersonNotFound)

	_, err = svc.LeanPerson(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestPersonService_QueryTimeoutApplied(t *testing.T) {
	repo := newFakeRepo(ada)
	svc, _ := newService(t, repo, Options{QueryTimeout: time.Second})

	_, err := svc.ByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)

	_, ok := repo.lastCtx.Deadline()
	assert.True(t, ok)
}

func TestPersonService_InvalidateCache(t *testing.T) {
	repo := newFakeRepo(ada)
	svc, c := newService(t, repo, Options{})
	ctx := context.Background()

	_, err := svc.ByProcedure(ctx)
	require.NoError(t, err)
	_, err = svc.WithPhones(ctx)
	require.NoError(t, err)

	n, err := svc.InvalidateCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	has, _ := c.Has(ctx, KeyProcedure)
	assert.False(t, has)

	_, err = svc.ByProcedure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.count("procedure"))
}

func TestPersonService_WithSQLiteRepository(t *testing.T) {
	db := testutil.RefreshDatabase(t)
	repo, err := repositories.NewPersonSQLRepository(db, testutil.DiscardLogger())
	require.NoError(t, err)

	svc := NewPersonService(repo, nil, nil, Options{QueryTimeout: 5 * time.Second})
	ctx := context.Background()

	top, err := svc.Top(ctx, DefaultTopCount)
	require.NoError(t, err)
	assert.Len(t, top, DefaultTopCount)

	summary, err := svc.LeanPerson(ctx, "steveharvey@crazyfunny.com")
	require.NoError(t, err)
	assert.Equal(t, models.PersonSummary{FirstName: "Steve", LastName: "Harvey"}, summary)

	assert.NoError(t, svc.Ping(ctx))
}

func TestPersonService_CacheStats(t *testing.T) {
	logger := testutil.DiscardLogger()

	mem := cache.NewMemoryCache(logger)
	defer mem.Close()
	svc := NewPersonService(newFakeRepo(models.Person{PersonID: 1}), mem, logger, Options{})

	_, err := svc.Projected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.CacheStats()["total_keys"])

	assert.Nil(t, NewPersonService(newFakeRepo(), nil, logger, Options{}).CacheStats())
}

func TestPersonService_TopClampsCount(t *testing.T) {
	repo := newFakeRepo(ada)
	svc, c := newService(t, repo, Options{})
	ctx := context.Background()

	for n := MaxTopCount + 1; n < MaxTopCount+50; n++ {
		_, err := svc.Top(ctx, n)
		require.NoError(t, err)
	}

	assert.Equal(t, MaxTopCount, repo.lastN)
	assert.Equal(t, 1, repo.count("top"), "büyük n değerleri tek anahtarı paylaşır")
	assert.Len(t, svc.keys, 1)

	has, err := c.Has(ctx, fmt.Sprintf("%s%d", keyTopPrefix, MaxTopCount))
	require.NoError(t, err)
	assert.True(t, has)
}

// failingDeleteCache, Delete dışında MemoryCache gibi davranır.
type failingDeleteCache struct {
	cache.Cache
	fail bool
}

func (f *failingDeleteCache) Delete(ctx context.Context, key string) error {
	if f.fail {
		return errors.New("redis down")
	}
	return f.Cache.Delete(ctx, key)
}

func TestPersonService_InvalidateCacheKeepsFailedKeys(t *testing.T) {
	logger := testutil.DiscardLogger()
	mem := cache.NewMemoryCache(logger)
	defer mem.Close()

	c := &failingDeleteCache{Cache: mem, fail: true}
	repo := newFakeRepo(ada)
	svc := NewPersonService(repo, c, logger, Options{})
	ctx := context.Background()

	_, err := svc.ByProcedure(ctx)
	require.NoError(t, err)

	n, err := svc.InvalidateCache(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, n)

	c.fail = false
	n, err = svc.InvalidateCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	has, _ := mem.Has(ctx, KeyProcedure)
	assert.False(t, has)
}
