package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/neeva-app/neeva-backend/internal/ai"
	"github.com/neeva-app/neeva-backend/internal/config"
	"github.com/neeva-app/neeva-backend/internal/logger"
	"github.com/neeva-app/neeva-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	headers []string
	windows [][]models.ChatMessage
	reply   string
}

func (f *fakeGateway) Complete(ctx context.Context, systemHeader string, history []models.ChatMessage) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.headers = append(f.headers, systemHeader)
	window := make([]models.ChatMessage, len(history))
	copy(window, history)
	f.windows = append(f.windows, window)
	return f.reply
}

func TestService_SendHelloScenario(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	user := newTestUser(t, gdb)
	store := NewStore(gdb)
	gateway := &fakeGateway{reply: "Hi Asha, how are you feeling today?"}

	svc := NewService(store, gateway, 10, logger.NewNop())

	reply, err := svc.Send(ctx, user, "Hello")
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.NotZero(t, reply.ID)
	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Equal(t, gateway.reply, reply.Content)

	// The gateway saw exactly the just-appended user turn.
	require.Equal(t, 1, gateway.calls)
	require.Len(t, gateway.windows[0], 1)
	assert.Equal(t, models.RoleUser, gateway.windows[0][0].Role)
	assert.Equal(t, "Hello", gateway.windows[0][0].Content)

	// History is newest-first: assistant turn leads.
	history, err := svc.History(ctx, user.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleAssistant, history[0].Role)
	assert.Equal(t, models.RoleUser, history[1].Role)
}

func TestService_HeaderReflectsProfile(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	user := newTestUser(t, gdb)
	user.OnboardingData = datatypes.JSON(`{"goals":["sleep","anxiety"]}`)
	store := NewStore(gdb)
	gateway := &fakeGateway{reply: "ok"}

	svc := NewService(store, gateway, 10, logger.NewNop())

	_, err := svc.Send(ctx, user, "Hello")
	require.NoError(t, err)

	require.Len(t, gateway.headers, 1)
	assert.Contains(t, gateway.headers[0], "sleep, anxiety")
}

func TestService_WindowBoundedByHistoryLimit(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	user := newTestUser(t, gdb)
	store := NewStore(gdb)
	gateway := &fakeGateway{reply: "ok"}

	svc := NewService(store, gateway, 4, logger.NewNop())

	for i := 0; i < 5; i++ {
		_, err := svc.Send(ctx, user, "again")
		require.NoError(t, err)
	}

	last := gateway.windows[len(gateway.windows)-1]
	assert.Len(t, last, 4)
	// Oldest first, newest user turn last.
	assert.Equal(t, models.RoleUser, last[len(last)-1].Role)
}

func TestService_ProviderDownRecordsFallback(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	user := newTestUser(t, gdb)
	store := NewStore(gdb)

	cfg := config.AI{
		APIKey:         "test",
		BaseURL:        "http://127.0.0.1:1", // nothing listens here
		ChatModel:      "test-model",
		InsightModel:   "test-model",
		TimeoutSeconds: 1,
		MaxRetries:     0,
	}
	client := ai.NewClient(cfg, logger.NewNop())
	gateway := ai.NewGateway(client, cfg, logger.NewNop())

	svc := NewService(store, gateway, 10, logger.NewNop())

	reply, err := svc.Send(ctx, user, "Hello")
	require.NoError(t, err)
	assert.Equal(t, ai.ChatFallback, reply.Content)

	// The fallback was durably recorded as the assistant turn.
	history, err := svc.History(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ai.ChatFallback, history[0].Content)
}

func TestService_UserTurnWriteFailureSkipsModel(t *testing.T) {
	ctx := context.Background()
	gdb, mock := newMockDB(t)
	store := NewStore(gdb)
	gateway := &fakeGateway{reply: "never"}

	svc := NewService(store, gateway, 10, logger.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "chat_messages"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	user := &models.User{Model: gormModelWithID(1)}
	reply, err := svc.Send(ctx, user, "Hello")

	require.Error(t, err)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Nil(t, reply)
	assert.Equal(t, 0, gateway.calls)
}

func TestService_AssistantTurnWriteFailureReturnsReply(t *testing.T) {
	ctx := context.Background()
	gdb, mock := newMockDB(t)
	store := NewStore(gdb)
	gateway := &fakeGateway{reply: "generated reply"}

	svc := NewService(store, gateway, 10, logger.NewNop())

	// User turn commits.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "chat_messages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	// Window read succeeds.
	mock.ExpectQuery(`SELECT \* FROM "chat_messages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "role", "content"}).
			AddRow(1, 1, models.RoleUser, "Hello"))

	// Assistant turn fails to commit.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "chat_messages"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	user := &models.User{Model: gormModelWithID(1)}
	reply, err := svc.Send(ctx, user, "Hello")

	require.Error(t, err)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)

	// The generated text still comes back for immediate display.
	require.NotNil(t, reply)
	assert.Zero(t, reply.ID)
	assert.Equal(t, "generated reply", reply.Content)
}

func TestService_ConcurrentSendsLoseNoTurns(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	user := newTestUser(t, gdb)
	store := NewStore(gdb)
	gateway := &fakeGateway{reply: "ok"}

	svc := NewService(store, gateway, 10, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Send(ctx, user, "racing")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := svc.History(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, history, 4)

	roles := map[string]int{}
	for _, turn := range history {
		roles[turn.Role]++
	}
	assert.Equal(t, 2, roles[models.RoleUser])
	assert.Equal(t, 2, roles[models.RoleAssistant])
}
