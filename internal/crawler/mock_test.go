package crawler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"sjsage522/pricecompare/helpers"
	"sjsage522/pricecompare/services/cache"
)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	mu    sync.Mutex
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, key)
	return nil
}

// MockReporter records diagnostics instead of logging them
type MockReporter struct {
	mu     sync.Mutex
	errors []string
}

var _ helpers.LoggerInterface = (*MockReporter)(nil)

func (m *MockReporter) LogError(source string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, source+": "+err.Error())
}

func (m *MockReporter) LogInfo(format string, args ...interface{}) {}

func (m *MockReporter) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

// stubFetcher serves a fixed body or error and counts calls
type stubFetcher struct {
	body  string
	err   error
	calls int
	urls  []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string, headers helpers.Headers) (io.Reader, error) {
	f.calls++
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	if headers.UserAgent == "" {
		return nil, fmt.Errorf("missing user agent")
	}
	return strings.NewReader(f.body), nil
}
