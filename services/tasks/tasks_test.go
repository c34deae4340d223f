package tasks

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingConfirmedTaskRoundTrip(t *testing.T) {
	task, err := NewBookingConfirmedTask("bk-1")
	require.NoError(t, err)
	assert.Equal(t, TypeBookingConfirmed, task.Type())

	p, err := ParseBookingConfirmed(task)
	require.NoError(t, err)
	assert.Equal(t, "bk-1", p.BookingID)
}

func TestParseRejectsBadPayloads(t *testing.T) {
	_, err := ParseBookingConfirmed(asynq.NewTask(TypeBookingConfirmed, []byte("not json")))
	assert.Error(t, err)

	_, err = ParseBookingConfirmed(asynq.NewTask(TypeBookingConfirmed, []byte(`{}`)))
	assert.Error(t, err)

	_, err = ParseEnquiryReceived(asynq.NewTask(TypeEnquiryReceived, []byte(`{"enquiryId":""}`)))
	assert.Error(t, err)
}

func TestAsynqEnqueuerUsesNotificationQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close()

	task, err := NewEnquiryReceivedTask("enq-1")
	require.NoError(t, err)

	require.NoError(t, NewAsynqEnqueuer(client).Enqueue(context.Background(), task))

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	n, err := rdb.LLen(context.Background(), "asynq:{"+QueueNotifications+"}:pending").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
