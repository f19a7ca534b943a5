package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	event := New(TypeQuizCompleted, map[string]interface{}{"score": float64(4)})

	data, err := Encode(event)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeQuizCompleted, decoded.EventType())
	assert.Equal(t, float64(4), decoded.Payload()["score"])
	assert.WithinDuration(t, event.Timestamp(), decoded.Timestamp(), time.Millisecond)
}

func TestDecodeRejectsUntyped(t *testing.T) {
	_, err := Decode([]byte(`{"data":{}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestChannelPublisherDelivers(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), Topic)
	require.NoError(t, err)

	p := NewChannelPublisher(pubSub, "")
	require.NoError(t, p.Publish(context.Background(), New(TypeChatDeleted, map[string]interface{}{"chat_id": "c1"})))

	select {
	case msg := <-messages:
		msg.Ack()
		decoded, err := Decode(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, TypeChatDeleted, decoded.Type)
		assert.Equal(t, "c1", decoded.Data["chat_id"])
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}
