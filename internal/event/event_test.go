package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	pkgkafka "github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/kafka"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []*pkgkafka.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, e *pkgkafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, e)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "storefront.review.created", TopicReviewCreated)
	assert.Equal(t, "storefront.review.updated", TopicReviewUpdated)
	assert.Equal(t, "storefront.review.deleted", TopicReviewDeleted)
	assert.Equal(t, "storefront.product.rating_updated", TopicRatingUpdated)
	assert.Equal(t, "storefront.product.rating_recompute_requested", TopicRatingRecomputeRequested)
}

func TestProducer_PublishReviewCreated(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, discardLogger())
	ctx := logger.WithCorrelationID(context.Background(), "corr-9")

	r := &domain.Review{ID: "r1", ProductID: "p1", UserID: "u1", Rating: 4}
	require.NoError(t, p.PublishReviewCreated(ctx, r))

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicReviewCreated, pub.topics[0])
	e := pub.events[0]
	assert.Equal(t, "r1", e.AggregateID)
	assert.Equal(t, AggregateTypeReview, e.AggregateType)
	assert.Equal(t, "corr-9", e.CorrelationID)

	var data ReviewData
	require.NoError(t, e.UnmarshalData(&data))
	assert.Equal(t, ReviewData{ID: "r1", ProductID: "p1", UserID: "u1", Rating: 4}, data)
}

func TestProducer_PublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	p := NewProducer(pub, discardLogger())

	err := p.PublishRatingUpdated(context.Background(), "p1", 4.5)
	assert.ErrorContains(t, err, "broker down")
}

type fakeRecomputer struct {
	calls []string
	err   error
}

func (f *fakeRecomputer) RecomputeRating(_ context.Context, productID string) (float64, error) {
	f.calls = append(f.calls, productID)
	return 4.2, f.err
}

func recomputeEvent(t *testing.T, productID string) *pkgkafka.Event {
	t.Helper()
	e, err := pkgkafka.NewEvent(TopicRatingRecomputeRequested, productID, AggregateTypeProduct, SourceStorefront,
		RatingRecomputeRequestedData{ProductID: productID, Reason: "update failed"})
	require.NoError(t, err)
	return e
}

func TestRatingRecomputeConsumer_Handle(t *testing.T) {
	r := &fakeRecomputer{}
	c := NewRatingRecomputeConsumer(r, discardLogger())

	require.NoError(t, c.Handle(context.Background(), recomputeEvent(t, "p1")))
	assert.Equal(t, []string{"p1"}, r.calls)
}

func TestRatingRecomputeConsumer_ReturnsErrorForRetry(t *testing.T) {
	r := &fakeRecomputer{err: errors.New("db down")}
	c := NewRatingRecomputeConsumer(r, discardLogger())

	err := c.Handle(context.Background(), recomputeEvent(t, "p1"))
	assert.ErrorContains(t, err, "db down")
}

func TestRatingRecomputeConsumer_SkipsEmptyProduct(t *testing.T) {
	r := &fakeRecomputer{}
	c := NewRatingRecomputeConsumer(r, discardLogger())

	require.NoError(t, c.Handle(context.Background(), recomputeEvent(t, "")))
	assert.Empty(t, r.calls)
}

func TestRatingRecomputeConsumer_BadPayload(t *testing.T) {
	c := NewRatingRecomputeConsumer(&fakeRecomputer{}, discardLogger())
	e := &pkgkafka.Event{EventType: TopicRatingRecomputeRequested, Data: []byte(`"nope"`)}
	assert.Error(t, c.Handle(context.Background(), e))
}
