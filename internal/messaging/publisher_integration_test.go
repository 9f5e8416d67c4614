package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"marketplace-server/internal/messaging"
	"marketplace-server/internal/models"

	"github.com/docker/docker/client"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const integrationQueue = "marketplace_events_test"

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("Docker client unavailable: %v", err)
	}
	defer cli.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		t.Skipf("Docker daemon is not reachable: %v", err)
	}
}

func TestRabbitMQPublisher_DeliversToQueue(t *testing.T) {
	requireDocker(t)
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx,
		"rabbitmq:3-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "start rabbitmq container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.AmqpURL(ctx)
	require.NoError(t, err)

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	pub, err := messaging.NewRabbitMQPublisher(conn, integrationQueue, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	event := models.NewDomainEvent(models.EventProductApproved, 42, 1)
	require.NoError(t, pub.Publish(ctx, event))

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	var msg amqp.Delivery
	require.Eventually(t, func() bool {
		var ok bool
		msg, ok, err = ch.Get(integrationQueue, true)
		return err == nil && ok
	}, 10*time.Second, 100*time.Millisecond)

	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)

	var got models.DomainEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	require.Equal(t, models.EventProductApproved, got.Type)
	require.Equal(t, int64(42), got.EntityID)
	require.Equal(t, int64(1), got.ActorID)
}
