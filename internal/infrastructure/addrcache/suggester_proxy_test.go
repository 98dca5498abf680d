package addrcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gitlab.com/forgefit/gymcore/internal/core/service"
)

type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) Suggest(ctx context.Context, query string) ([]*service.Address, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*service.Address), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string) (interface{}, bool) {
	args := m.Called(key)
	return args.Get(0), args.Bool(1)
}

func (m *MockCache) Set(key string, value interface{}, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *MockCache) Delete(key string) {
	m.Called(key)
}

func TestSuggesterProxy_CacheHit(t *testing.T) {
	mockSuggester := new(MockSuggester)
	mockCache := new(MockCache)
	proxy := NewSuggesterProxy(mockSuggester, mockCache, 5*time.Minute)

	ctx := context.Background()
	expected := []*service.Address{{City: "Moscow"}}

	mockCache.On("Get", "suggest:query").Return(expected, true).Once()
	// The upstream suggester must not be called on a hit.

	result, err := proxy.Suggest(ctx, "query")
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockCache.AssertExpectations(t)
	mockSuggester.AssertExpectations(t)
}

func TestSuggesterProxy_CacheMiss(t *testing.T) {
	mockSuggester := new(MockSuggester)
	mockCache := new(MockCache)
	proxy := NewSuggesterProxy(mockSuggester, mockCache, 5*time.Minute)

	ctx := context.Background()
	expected := []*service.Address{{City: "Moscow"}}

	mockCache.On("Get", "suggest:query").Return(nil, false).Once()
	mockSuggester.On("Suggest", ctx, "query").Return(expected, nil).Once()
	mockCache.On("Set", "suggest:query", expected, 5*time.Minute).Once()

	result, err := proxy.Suggest(ctx, "query")
	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockCache.AssertExpectations(t)
	mockSuggester.AssertExpectations(t)
}

func TestSuggesterProxy_UpstreamError(t *testing.T) {
	mockSuggester := new(MockSuggester)
	mockCache := new(MockCache)
	proxy := NewSuggesterProxy(mockSuggester, mockCache, 5*time.Minute)

	ctx := context.Background()
	expectedErr := errors.New("upstream error")

	mockCache.On("Get", "suggest:query").Return(nil, false).Once()
	mockSuggester.On("Suggest", ctx, "query").Return(nil, expectedErr).Once()
	// Set must not be called when the upstream fails.

	result, err := proxy.Suggest(ctx, "query")
	assert.Error(t, err)
	assert.Equal(t, expectedErr, err)
	assert.Nil(t, result)

	mockCache.AssertExpectations(t)
	mockSuggester.AssertExpectations(t)
}
