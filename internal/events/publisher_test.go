package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/shoplens/internal/models"
)

type fakeRedisClient struct {
	calls []*redis.XAddArgs
	err   error
}

func (f *fakeRedisClient) XAdd(_ context.Context, args *redis.XAddArgs) *redis.StringCmd {
	f.calls = append(f.calls, args)
	return redis.NewStringResult("1-0", f.err)
}

func usableProduct() *models.ProductInfo {
	return &models.ProductInfo{
		URL:           "https://www.zara.com/us/en/top-p02753305.html",
		IsProductPage: true,
		Success:       true,
		Title:         "RIBBED CROP TOP",
		Brand:         "Zara",
		SKU:           "02753305",
		Price:         19.95,
		Currency:      "EUR",
	}
}

func TestPublishProductDetected(t *testing.T) {
	client := &fakeRedisClient{}
	publisher := NewPublisher(client, "", slog.Default())

	err := publisher.PublishProductDetected(context.Background(), "Zara", usableProduct())
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	call := client.calls[0]
	assert.Equal(t, DefaultStream, call.Stream)
	assert.Equal(t, "PRODUCT_DETECTED", call.Values.(map[string]interface{})["event_type"])

	var payload ProductDetectedPayload
	raw := call.Values.(map[string]interface{})["payload"].(string)
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.NotEmpty(t, payload.EventID)
	assert.Equal(t, "Zara", payload.Retailer)
	assert.False(t, payload.Timestamp.IsZero())
	require.NotNil(t, payload.Product)
	assert.Equal(t, "02753305", payload.Product.SKU)
}

func TestPublishRejectsNonProduct(t *testing.T) {
	client := &fakeRedisClient{}
	publisher := NewPublisher(client, "", slog.Default())

	record := &models.ProductInfo{URL: "https://www.zara.com/us/en/"}
	err := publisher.PublishProductDetected(context.Background(), "Zara", record)
	require.Error(t, err)
	assert.Empty(t, client.calls, "nothing reaches the stream")
}

func TestPublishPropagatesRedisError(t *testing.T) {
	client := &fakeRedisClient{err: errors.New("connection refused")}
	publisher := NewPublisher(client, "custom:stream", slog.Default())

	err := publisher.PublishProductDetected(context.Background(), "Zara", usableProduct())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
	require.Len(t, client.calls, 1)
	assert.Equal(t, "custom:stream", client.calls[0].Stream)
}
