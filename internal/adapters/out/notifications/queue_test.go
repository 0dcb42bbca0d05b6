package notifications_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldservice/internal/adapters/out/notifications"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_OnCompleted_DrainsInOrder(t *testing.T) {
	queue := notifications.NewQueue(8, slog.New(slog.DiscardHandler))

	first := kernel.NewUUID()
	second := kernel.NewUUID()
	actorID := kernel.NewUUID()

	queue.OnCompleted(actorID, first)
	queue.OnCompleted(actorID, second)

	events := queue.Drain(8)
	require.Len(t, events, 2)
	assert.Equal(t, first, events[0].WorkOrderID)
	assert.Equal(t, second, events[1].WorkOrderID)
	assert.Equal(t, actorID, events[0].ActorID)
	assert.False(t, events[0].OccurredAt.IsZero())

	assert.Empty(t, queue.Drain(8))
}

func TestQueue_OnCompleted_FullBufferDropsEvent(t *testing.T) {
	queue := notifications.NewQueue(1, slog.New(slog.DiscardHandler))

	kept := kernel.NewUUID()
	queue.OnCompleted(kernel.NewUUID(), kept)
	queue.OnCompleted(kernel.NewUUID(), kernel.NewUUID())

	events := queue.Drain(8)
	require.Len(t, events, 1)
	assert.Equal(t, kept, events[0].WorkOrderID)
}

func TestQueue_Drain_RespectsBatchSize(t *testing.T) {
	queue := notifications.NewQueue(8, slog.New(slog.DiscardHandler))

	for range 5 {
		queue.OnCompleted(kernel.NewUUID(), kernel.NewUUID())
	}

	assert.Len(t, queue.Drain(3), 3)
	assert.Len(t, queue.Drain(3), 2)
}

func TestWebhookSender_Send(t *testing.T) {
	t.Run("posts event as json", func(t *testing.T) {
		var received []byte
		var contentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			received, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		workOrderID := kernel.NewUUID()
		queue := notifications.NewQueue(1, slog.New(slog.DiscardHandler))
		queue.OnCompleted(kernel.NewUUID(), workOrderID)
		event := queue.Drain(1)[0]

		sender := notifications.NewWebhookSender(server.URL)
		err := sender.Send(t.Context(), event)

		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)
		assert.Contains(t, string(received), `"event":"assignment.completed"`)
		assert.Contains(t, string(received), workOrderID.String())
	})

	t.Run("non-2xx response fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		sender := notifications.NewWebhookSender(server.URL)
		err := sender.Send(t.Context(), notifications.CompletionEvent{
			ActorID:     kernel.NewUUID(),
			WorkOrderID: kernel.NewUUID(),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable endpoint fails", func(t *testing.T) {
		sender := notifications.NewWebhookSender("http://127.0.0.1:1")
		err := sender.Send(t.Context(), notifications.CompletionEvent{
			ActorID:     kernel.NewUUID(),
			WorkOrderID: kernel.NewUUID(),
		})
		require.Error(t, err)
	})
}
