package worker

import (
	"encoding/json"
	"testing"

	"runboard/internal/app/fanout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchDeliversEnvelope(t *testing.T) {
	hub := fanout.NewHub()
	sub := hub.Subscribe()
	hub.Join(sub, fanout.UserRoom(5))
	relay := NewFanoutRelay(nil, "test", hub)

	frame, err := fanout.NewFrame(fanout.EventRunApproved, map[string]int{"run_id": 9})
	require.NoError(t, err)
	body, err := json.Marshal(fanout.Envelope{Room: fanout.UserRoom(5), Frame: frame})
	require.NoError(t, err)

	n, err := relay.dispatch(string(body))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := <-sub.Frames()
	assert.Equal(t, fanout.EventRunApproved, got.Event)
	assert.JSONEq(t, `{"run_id":9}`, string(got.Data))
}

func TestDispatchRejectsGarbage(t *testing.T) {
	relay := NewFanoutRelay(nil, "test", fanout.NewHub())

	_, err := relay.dispatch("not json")
	assert.Error(t, err)

	_, err = relay.dispatch(`{"room":"","frame":{"event":"x"}}`)
	assert.Error(t, err)
}
