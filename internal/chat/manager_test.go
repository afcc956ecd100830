package chat_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmartins-dev/bruno-dev/internal/chat"
	"github.com/bmartins-dev/bruno-dev/internal/llm"
)

type echoSender struct{}

func (echoSender) Send(_ context.Context, messages []llm.Message) (string, error) {
	return "echo: " + messages[len(messages)-1].Content, nil
}

func TestSessionsAreIsolated(t *testing.T) {
	m := chat.NewManager("S", 10)
	svc := chat.NewService(m, echoSender{}, nil, nil)

	_, err := svc.Respond(context.Background(), "a", "from a")
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), "b", "from b")
	require.NoError(t, err)

	snapA := m.Snapshot("a")
	require.Len(t, snapA, 3)
	assert.Equal(t, "from a", snapA[1].Content)

	snapB := m.Snapshot("b")
	require.Len(t, snapB, 3)
	assert.Equal(t, "from b", snapB[1].Content)
}

func TestBlankSessionIDMintsOne(t *testing.T) {
	m := chat.NewManager("S", 10)
	svc := chat.NewService(m, echoSender{}, nil, nil)

	reply, err := svc.Respond(context.Background(), "", "hello")
	require.NoError(t, err)
	require.NotEmpty(t, reply.SessionID)

	snap := m.Snapshot(reply.SessionID)
	require.Len(t, snap, 3)
}

func TestFullRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	m := chat.NewManager("S", 10)
	svc := chat.NewService(m, echoSender{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Respond(ctx, "keeper", "hi")
	require.NoError(t, err)
	for i := 1; i < chat.DefaultMaxSessions; i++ {
		_, err := svc.Respond(ctx, fmt.Sprintf("s%d", i), "hi")
		require.NoError(t, err)
	}

	// The registry is now full. Touch the oldest session so something else
	// becomes the eviction candidate, then overflow.
	_, err = svc.Respond(ctx, "keeper", "still here")
	require.NoError(t, err)
	_, err = svc.Respond(ctx, "overflow", "hi")
	require.NoError(t, err)

	assert.NotNil(t, m.Snapshot("keeper"), "recently used session must survive eviction")
	assert.NotNil(t, m.Snapshot("overflow"))
	assert.Nil(t, m.Snapshot("s1"), "idle session should have been evicted")
}

func TestSnapshotUnknownSession(t *testing.T) {
	m := chat.NewManager("S", 10)
	assert.Nil(t, m.Snapshot("nope"))
}

func TestClearUnknownSessionIsNoop(t *testing.T) {
	m := chat.NewManager("S", 10)
	m.Clear("nope") // must not panic or create a session
	assert.Nil(t, m.Snapshot("nope"))
}
