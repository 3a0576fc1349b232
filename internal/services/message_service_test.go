package services

import (
	"context"
	"testing"

	"chat-client/internal/models"
	"chat-client/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRoomRequiresCurrentRoom(t *testing.T) {
	ctx := context.Background()
	rooms := store.NewRoomState(store.KeepStale)
	out := &recordingEmitter{}
	svc := NewMessageService(rooms, out)

	assert.ErrorIs(t, svc.SendRoom(ctx, "hello?"), models.ErrInputRejected)
	assert.Empty(t, out.sent)

	require.NoError(t, rooms.RequestJoin("general"))
	require.NoError(t, svc.SendRoom(ctx, "hi"))
	assert.Equal(t, []models.Outbound{{
		Event: models.RequestRoomMessage,
		Data:  models.RoomMessageRequest{Room: "general", Message: "hi"},
	}}, out.sent)
}

func TestBroadcastAndPrivate(t *testing.T) {
	ctx := context.Background()
	out := &recordingEmitter{}
	svc := NewMessageService(store.NewRoomState(store.KeepStale), out)

	require.NoError(t, svc.Broadcast(ctx, "all hands"))
	assert.ErrorIs(t, svc.SendPrivate(ctx, "", "lost"), models.ErrInputRejected)
	require.NoError(t, svc.SendPrivate(ctx, "s2", "psst"))

	assert.Equal(t, []models.Outbound{
		{Event: models.RequestBroadcast, Data: "all hands"},
		{Event: models.RequestPrivateMessage, Data: models.PrivateMessageRequest{ToID: "s2", Message: "psst"}},
	}, out.sent)
}
