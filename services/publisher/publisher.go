package publisher

import (
	"encoding/json"
	"time"

	"sjsage522/pricecompare/internal/crawler"
	pkgerrors "sjsage522/pricecompare/pkg/errors"
)

// MessageKey is the stream field holding the encoded comparison result
const MessageKey = "b64_listings"

// Publisher represents a service for publishing messages
type Publisher interface {
	// Publish publishes a message to a stream
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}

// Result is the published form of a comparison
type Result struct {
	Query       string            `json:"query"`
	Listings    []crawler.Listing `json:"listings"`
	PublishedAt time.Time         `json:"published_at"`
}

// ResultSink publishes every comparison through a Publisher
type ResultSink struct {
	publisher Publisher
	now       func() time.Time
}

// NewResultSink creates a sink over publisher
func NewResultSink(publisher Publisher) *ResultSink {
	return &ResultSink{publisher: publisher, now: time.Now}
}

// Consume implements comparer.Sink
func (s *ResultSink) Consume(query string, listings []crawler.Listing) error {
	data, err := json.Marshal(Result{Query: query, Listings: listings, PublishedAt: s.now().UTC()})
	if err != nil {
		return pkgerrors.NewPublisher("redis", "failed to marshal result", err)
	}
	if err := s.publisher.Publish(MessageKey, data); err != nil {
		return pkgerrors.NewPublisher("redis", "failed to publish result", err)
	}
	return nil
}
