package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/culinai/chef/internal/db"
	"github.com/culinai/chef/internal/i18n"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "6f1c2a8e-5d4b-4c3a-9e8f-0a1b2c3d4e5f"
	testItemID = "0b9d7c6e-1a2b-4c3d-8e9f-a0b1c2d3e4f5"
)

type MockQueries struct {
	mock.Mock
}

func (m *MockQueries) InsertRecipeHistory(ctx context.Context, arg db.InsertRecipeHistoryParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQueries) ListRecentRecipeHistory(ctx context.Context, arg db.ListRecentRecipeHistoryParams) ([]db.RecipeHistory, error) {
	args := m.Called(ctx, arg)
	rows, _ := args.Get(0).([]db.RecipeHistory)
	return rows, args.Error(1)
}

func testItem() Item {
	return NewItem(i18n.SimplifiedChinese, batch("麻婆豆腐"), time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC))
}

func TestPostgresRemote_Insert(t *testing.T) {
	q := new(MockQueries)
	item := testItem()
	item.ID = testItemID

	q.On("InsertRecipeHistory", mock.Anything, mock.MatchedBy(func(arg db.InsertRecipeHistoryParams) bool {
		return arg.UserID.String() == testUserID &&
			arg.ID.String() == testItemID &&
			arg.Language == "zh-CN" &&
			arg.SummaryTitle == "麻婆豆腐" &&
			arg.CreatedAt.Time.Equal(item.Time())
	})).Return(nil).Once()

	require.NoError(t, NewPostgresRemote(q).Insert(context.Background(), testUserID, item))
	q.AssertExpectations(t)
}

func TestPostgresRemote_InsertRejectsBadUserID(t *testing.T) {
	q := new(MockQueries)

	err := NewPostgresRemote(q).Insert(context.Background(), "not-a-uuid", testItem())

	assert.Error(t, err)
	q.AssertNotCalled(t, "InsertRecipeHistory", mock.Anything, mock.Anything)
}

func TestPostgresRemote_Recent(t *testing.T) {
	q := new(MockQueries)
	var uid, id pgtype.UUID
	require.NoError(t, uid.Scan(testUserID))
	require.NoError(t, id.Scan(testItemID))
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	q.On("ListRecentRecipeHistory", mock.Anything, db.ListRecentRecipeHistoryParams{UserID: uid, Limit: RemoteLimit}).
		Return([]db.RecipeHistory{{
			ID:           id,
			UserID:       uid,
			Language:     "ko",
			SummaryTitle: "비빔밥",
			Recipes:      []byte(`[{"title":"비빔밥","ingredients":["밥"],"instructions":["섞기"],"videoSearchQuery":"bibimbap"}]`),
			CreatedAt:    pgtype.Timestamptz{Time: created, Valid: true},
		}}, nil)

	items, err := NewPostgresRemote(q).Recent(context.Background(), testUserID, RemoteLimit)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, testItemID, items[0].ID)
	assert.Equal(t, i18n.Korean, items[0].Language)
	assert.Equal(t, created.UnixMilli(), items[0].Timestamp)
	assert.Equal(t, "비빔밥", items[0].Recipes[0].Title)
}

func TestPostgresRemote_RecentError(t *testing.T) {
	q := new(MockQueries)
	q.On("ListRecentRecipeHistory", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewPostgresRemote(q).Recent(context.Background(), testUserID, RemoteLimit)
	assert.Error(t, err)
}

func TestSupabaseRemote(t *testing.T) {
	var inserted []historyRow
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/recipe_history", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&inserted))
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			assert.Equal(t, "eq."+testUserID, r.URL.Query().Get("user_id"))
			assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode(inserted)
		}
	}))
	defer server.Close()

	remote := NewSupabaseRemote(server.URL+"/", "service-key")
	item := testItem()

	require.NoError(t, remote.Insert(context.Background(), testUserID, item))
	require.Len(t, inserted, 1)
	assert.Equal(t, testUserID, inserted[0].UserID)
	assert.Equal(t, "zh-CN", inserted[0].Language)

	items, err := remote.Recent(context.Background(), testUserID, RemoteLimit)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, item.Timestamp, items[0].Timestamp)
	assert.Equal(t, item.Recipes, items[0].Recipes)
}

func TestSupabaseRemote_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	remote := NewSupabaseRemote(server.URL, "wrong")

	err := remote.Insert(context.Background(), testUserID, testItem())
	assert.ErrorContains(t, err, "invalid key")

	_, err = remote.Recent(context.Background(), testUserID, RemoteLimit)
	assert.ErrorContains(t, err, "status 401")
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func TestQueuedRemote(t *testing.T) {
	enq := &fakeEnqueuer{}
	backend := new(MockRemote)
	backend.On("Recent", mock.Anything, testUserID, RemoteLimit).Return([]Item{{ID: "a"}}, nil)

	remote := NewQueuedRemote(enq, backend)
	item := testItem()

	require.NoError(t, remote.Insert(context.Background(), testUserID, item))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeRecordHistory, enq.tasks[0].Type())

	payload, err := ParseRecordPayload(enq.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, testUserID, payload.UserID)
	assert.Equal(t, item.ID, payload.Item.ID)

	items, err := remote.Recent(context.Background(), testUserID, RemoteLimit)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	backend.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestQueuedRemote_EnqueueError(t *testing.T) {
	remote := NewQueuedRemote(&fakeEnqueuer{err: errors.New("redis down")}, new(MockRemote))

	err := remote.Insert(context.Background(), testUserID, testItem())
	assert.ErrorContains(t, err, "redis down")
}

func TestParseRecordPayload_Invalid(t *testing.T) {
	_, err := ParseRecordPayload(asynq.NewTask(TypeRecordHistory, []byte("{")))
	assert.Error(t, err)

	_, err = ParseRecordPayload(asynq.NewTask(TypeRecordHistory, []byte(`{"user_id":""}`)))
	assert.Error(t, err)
}
