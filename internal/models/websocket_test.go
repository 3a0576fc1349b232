package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, raw string) Frame {
	t.Helper()
	var f Frame
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	return f
}

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want InboundEvent
	}{
		{"rooms", `{"event":"rooms","data":["general","random"]}`, RoomsList{Rooms: []string{"general", "random"}}},
		{"rooms null", `{"event":"rooms","data":null}`, RoomsList{Rooms: []string{}}},
		{"system", `{"event":"system","data":{"msg":"bob joined"}}`, SystemNotice{Text: "bob joined"}},
		{"room message", `{"event":"roomMessage","data":{"room":"general","from":"alice","message":"hi"}}`,
			RoomMessage{Room: "general", From: "alice", Text: "hi"}},
		{"broadcast", `{"event":"broadcast","data":{"from":"carla","message":"maintenance"}}`,
			BroadcastMessage{From: "carla", Text: "maintenance"}},
		{"private", `{"event":"privateMessage","data":{"from":"bob","message":"psst"}}`,
			PrivateMessage{From: "bob", Text: "psst"}},
		{"presence", `{"event":"presence","data":{"clients":[{"id":"s1","username":"bob","role":"member"}]}}`,
			PresenceUpdate{Users: []User{{ID: "s1", Username: "bob", Role: RoleMember}}}},
		{"presence empty", `{"event":"presence","data":{"clients":null}}`, PresenceUpdate{Users: []User{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFrame(frame(t, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Name(), got.Name())
		})
	}
}

func TestDecodeFrameUnrecognized(t *testing.T) {
	for _, raw := range []string{
		`{"event":"typing","data":{"from":"bob"}}`,
		`{"event":"rooms","data":{"not":"a list"}}`,
		`{"event":"roomMessage"}`,
		`{"event":"presence","data":"everyone"}`,
		`{"data":["general"]}`,
		`{"event":"system","data":null}`,
		`{"event":"roomMessage","data":null}`,
		`{"event":"broadcast","data":null}`,
		`{"event":"privateMessage","data":null}`,
		`{"event":"presence","data":null}`,
	} {
		_, err := DecodeFrame(frame(t, raw))
		assert.ErrorIs(t, err, ErrUnrecognizedEvent, raw)
	}
}

func TestOutboundEncoding(t *testing.T) {
	b, err := json.Marshal(Outbound{Event: RequestPrivateMessage, Data: PrivateMessageRequest{ToID: "s9", Message: "hey"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"privateMessage","data":{"toSocketId":"s9","message":"hey"}}`, string(b))

	b, err = json.Marshal(Outbound{Event: RequestListRooms})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"listRooms"}`, string(b))
}
