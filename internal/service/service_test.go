package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"cnctools/catalog/internal/client"
	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/state"
	"cnctools/catalog/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// MockFeedClient is a mock implementation of client.FeedClient
type MockFeedClient struct {
	mock.Mock
}

var _ client.FeedClient = (*MockFeedClient)(nil)

func (m *MockFeedClient) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockFeedClient) Close() error {
	return m.Called().Error(0)
}

// MockStateManager is a mock implementation of state.StateManager
type MockStateManager struct {
	mock.Mock
}

var _ state.StateManager = (*MockStateManager)(nil)

func (m *MockStateManager) Get(ctx context.Context, sessionID string) (domain.FilterState, bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.FilterState), args.Bool(1), args.Error(2)
}

func (m *MockStateManager) Save(ctx context.Context, sessionID string, st domain.FilterState) error {
	return m.Called(ctx, sessionID, st).Error(0)
}

func drill(sku, qty, fi string) domain.Product {
	return domain.Product{SKU: domain.Field(sku), InventoryQuantity: domain.Field(qty), CustomFi: domain.Field(fi)}
}

func feed() []domain.Product {
	return []domain.Product{
		drill("VW2", "1", "8"),
		drill("VW1", "1", "3"),
		drill("VW3", "0", "1"),
		drill("KK1", "2", "20"),
	}
}

func TestService_EmptyBeforeFirstRefresh(t *testing.T) {
	svc := NewService(new(MockFeedClient), state.NewMemoryStateManager(0), taxonomy.Default(), 100)

	assert.Nil(t, svc.Products())

	page, st := svc.Query(context.Background(), "", domain.DefaultFilterState())
	assert.True(t, page.Empty())
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, st.CurrentPage)
}

func TestService_RefreshAndQuery(t *testing.T) {
	ctx := context.Background()
	feedClient := new(MockFeedClient)
	feedClient.On("FetchProducts", mock.Anything).Return(feed(), nil)

	svc := NewService(feedClient, state.NewMemoryStateManager(0), taxonomy.Default(), 100)
	require.NoError(t, svc.Refresh(ctx))
	assert.False(t, svc.RefreshedAt().IsZero())

	page, _ := svc.Query(ctx, "s1", domain.DefaultFilterState())
	require.Len(t, page.Items, 2)
	assert.Equal(t, "VW1", page.Items[0].SKU.String())
	assert.Equal(t, "VW2", page.Items[1].SKU.String())

	feedClient.AssertExpectations(t)
}

func TestService_RefreshFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	feedClient := new(MockFeedClient)
	feedClient.On("FetchProducts", mock.Anything).Return(feed(), nil).Once()
	feedClient.On("FetchProducts", mock.Anything).Return(nil, errors.New("boom")).Once()

	svc := NewService(feedClient, state.NewMemoryStateManager(0), taxonomy.Default(), 100)
	require.NoError(t, svc.Refresh(ctx))
	assert.Error(t, svc.Refresh(ctx))

	assert.Len(t, svc.Products(), 4)
}

func TestService_PersistsClampedState(t *testing.T) {
	ctx := context.Background()
	feedClient := new(MockFeedClient)
	feedClient.On("FetchProducts", mock.Anything).Return(feed(), nil)

	states := state.NewMemoryStateManager(0)
	svc := NewService(feedClient, states, taxonomy.Default(), 100)
	require.NoError(t, svc.Refresh(ctx))

	_, next := svc.Query(ctx, "s1", domain.DefaultFilterState().WithPage(9))
	assert.Equal(t, 1, next.CurrentPage)

	stored := svc.SessionState(ctx, "s1")
	assert.Equal(t, next, stored)
}

func TestService_SessionStateDefaults(t *testing.T) {
	ctx := context.Background()
	states := new(MockStateManager)
	states.On("Get", mock.Anything, "missing").Return(domain.FilterState{}, false, nil)
	states.On("Get", mock.Anything, "broken").Return(domain.FilterState{}, false, errors.New("redis down"))

	svc := NewService(new(MockFeedClient), states, taxonomy.Default(), 25)

	for _, session := range []string{"", "missing", "broken"} {
		st := svc.SessionState(ctx, session)
		assert.Equal(t, domain.TabWiertla, st.ActiveTab, session)
		assert.Equal(t, 25, st.ItemsPerPage, session)
	}
}

func TestService_SaveFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	states := new(MockStateManager)
	states.On("Save", mock.Anything, "s1", mock.Anything).Return(errors.New("redis down"))

	svc := NewService(new(MockFeedClient), states, taxonomy.Default(), 100)

	page, st := svc.Query(ctx, "s1", domain.DefaultFilterState())
	assert.True(t, page.Empty())
	assert.Equal(t, 1, st.CurrentPage)
	states.AssertExpectations(t)
}

func TestService_ExportIgnoresPagination(t *testing.T) {
	ctx := context.Background()
	feedClient := new(MockFeedClient)
	feedClient.On("FetchProducts", mock.Anything).Return(feed(), nil)

	svc := NewService(feedClient, state.NewMemoryStateManager(0), taxonomy.Default(), 100)
	require.NoError(t, svc.Refresh(ctx))

	var buf bytes.Buffer
	st := domain.DefaultFilterState().WithItemsPerPage(1).WithPage(2)
	require.NoError(t, svc.Export(ctx, st, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Katalog")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "VW1", rows[1][0])
	assert.Equal(t, "VW2", rows[2][0])
}

func TestService_RunRefresherStopsOnCancel(t *testing.T) {
	feedClient := new(MockFeedClient)
	feedClient.On("FetchProducts", mock.Anything).Return(feed(), nil)

	svc := NewService(feedClient, state.NewMemoryStateManager(0), taxonomy.Default(), 100)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunRefresher(ctx, time.Hour) }()

	require.Eventually(t, func() bool { return svc.Products() != nil }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}
