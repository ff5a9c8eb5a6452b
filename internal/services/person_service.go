// -----------------------------------------------------------------------------
// Person Service
// -----------------------------------------------------------------------------
// Repository ile controller arasındaki katman. Liste sonuçlarını
// "persons:<varyant>" anahtarlarıyla cache'ler ve her sorguya
// QueryTimeout kadar süre tanır.
// -----------------------------------------------------------------------------

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/biyonik/person-directory/internal/models"
	"github.com/biyonik/person-directory/internal/repositories"
	"github.com/biyonik/person-directory/pkg/cache"
)

// Cache anahtarları.
const (
	KeyProjected = "persons:projected"
	KeySwitched  = "persons:switched"
	KeyProcedure = "persons:procedure"
	KeyPhones    = "persons:phones"
	keyTopPrefix = "persons:top:"
)

// ORM listesinin varsayılan ve en büyük boyutu. Her farklı n ayrı bir
// cache anahtarıdır; üst sınır anahtar sayısını da sınırlar.
const (
	DefaultTopCount = 5
	MaxTopCount     = 100
)

// ErrInvalidEmail, boş e-posta ile arama yapıldığında döner.
var ErrInvalidEmail = errors.New("email is required")

type PersonService struct {
	repo         repositories.PersonRepository
	cache        cache.Cache
	logger       *slog.Logger
	ttl          time.Duration
	queryTimeout time.Duration

	mu   sync.Mutex
	keys map[string]struct{}
}

// Options, PersonService ayarları.
type Options struct {
	TTL          time.Duration // 0 ise süresiz
	QueryTimeout time.Duration // 0 ise istek context'i aynen kullanılır
}

func NewPersonService(repo repositories.PersonRepository, c cache.Cache, logger *slog.Logger, opts Options) *PersonService {
	if c == nil {
		c = cache.NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonService{
		repo:         repo,
		cache:        c,
		logger:       logger,
		ttl:          opts.TTL,
		queryTimeout: opts.QueryTimeout,
		keys:         make(map[string]struct{}),
	}
}

// Projected, inline SQL ile okunan üç kolonluk liste.
func (s *PersonService) Projected(ctx context.Context) ([]models.Person, error) {
	return s.remember(ctx, KeyProjected, s.repo.ListProjected)
}

// Switched, FirstName'e göre sıralı liste.
func (s *PersonService) Switched(ctx context.Context) ([]models.Person, error) {
	return s.remember(ctx, KeySwitched, s.repo.ListSwitched)
}

// Top, ilk n kişi. n <= 0 ise DefaultTopCount, MaxTopCount'tan büyükse
// MaxTopCount kullanılır.
func (s *PersonService) Top(ctx context.Context, n int) ([]models.Person, error) {
	switch {
	case n <= 0:
		n = DefaultTopCount
	case n > MaxTopCount:
		n = MaxTopCount
	}
	return s.remember(ctx, fmt.Sprintf("%s%d", keyTopPrefix, n), func(ctx context.Context) ([]models.Person, error) {
		return s.repo.ListTop(ctx, n)
	})
}

// ByProcedure, Persons_Get sonucu.
func (s *PersonService) ByProcedure(ctx context.Context) ([]models.Person, error) {
	return s.remember(ctx, KeyProcedure, s.repo.ListByProcedure)
}

// WithPhones, telefon listeleriyle birlikte kişiler.
func (s *PersonService) WithPhones(ctx context.Context) ([]models.Person, error) {
	return s.remember(ctx, KeyPhones, s.repo.ListWithPhones)
}

// Lean, Persons_Get sonucunun ad/soyad projeksiyonu.
func (s *PersonService) Lean(ctx context.Context) ([]models.PersonSummary, error) {
	persons, err := s.ByProcedure(ctx)
	if err != nil {
		return nil, err
	}
	return models.LeanPersons(persons), nil
}

// ByEmail, e-posta ile kişiyi bulur. Sonuç cache'lenmez.
func (s *PersonService) ByEmail(ctx context.Context, email string) (models.Person, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Person{}, ErrInvalidEmail
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	person, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return models.Person{}, err
	}
	return person, nil
}

// LeanPerson, e-posta ile bulunan kişinin ad/soyad projeksiyonu.
func (s *PersonService) LeanPerson(ctx context.Context, email string) (models.PersonSummary, error) {
	person, err := s.ByEmail(ctx, email)
	if err != nil {
		return models.PersonSummary{}, err
	}
	return person.Lean(), nil
}

// Ping, veri kaynağının erişilebilir olup olmadığını kontrol eder.
func (s *PersonService) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Ping(ctx)
}

// CacheStats, cache sürücüsü istatistik sağlıyorsa onları döndürür.
func (s *PersonService) CacheStats() map[string]any {
	if st, ok := s.cache.(cache.Stats); ok {
		return st.Stats()
	}
	return nil
}

// InvalidateCache, bu servisin yazdığı tüm anahtarları siler ve silinen
// anahtar sayısını döndürür.
func (s *PersonService) InvalidateCache(ctx context.Context) (int, error) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	s.keys = make(map[string]struct{})
	s.mu.Unlock()

	var (
		errs   []error
		failed []string
	)
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
			failed = append(failed, key)
		}
	}
	if err := errors.Join(errs...); err != nil {
		// Silinemeyen anahtarlar sonraki flush için takipte kalır
		s.mu.Lock()
		for _, key := range failed {
			s.keys[key] = struct{}{}
		}
		s.mu.Unlock()
		return len(keys) - len(failed), err
	}

	s.logger.Info("Kişi cache'i temizlendi", "keys", len(keys))
	return len(keys), nil
}

func (s *PersonService) remember(ctx context.Context, key string, load func(context.Context) ([]models.Person, error)) ([]models.Person, error) {
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()

	persons, err := cache.RememberJSON(ctx, s.cache, s.logger, key, s.ttl, func(ctx context.Context) ([]models.Person, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		persons, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if persons == nil {
			persons = []models.Person{}
		}
		return persons, nil
	})
	if err != nil {
		s.logger.Error("❌ Kişi listesi okunamadı", "key", key, "error", err)
		return nil, err
	}
	return persons, nil
}

func (s *PersonService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}
