package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type PublisherTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	publisher Publisher
}

func (s *PublisherTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	publisher, err := New(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.publisher = publisher
}

func (s *PublisherTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherTestSuite))
}

func (s *PublisherTestSuite) TestChannelNaming() {
	s.Equal("session_events:abc", Channel("abc"))
}

func (s *PublisherTestSuite) TestPublishReachesSubscriber() {
	sub := s.client.Subscribe(context.Background(), Channel("test-session-id"))
	defer sub.Close()

	// Wait for the subscription to be established
	_, err := sub.Receive(context.Background())
	s.Require().NoError(err)

	err = s.publisher.Publish(context.Background(), &PublishInput{
		SessionID: "test-session-id",
		Event:     EventGameStarted,
		Payload:   map[string]any{"gameId": "test-game-id"},
	})
	s.Require().NoError(err)

	select {
	case msg := <-sub.Channel():
		var envelope Envelope
		s.Require().NoError(json.Unmarshal([]byte(msg.Payload), &envelope))
		s.Equal(EventGameStarted, envelope.Event)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(envelope.Payload, &body))
		s.Equal("test-game-id", body["gameId"])
	case <-time.After(2 * time.Second):
		s.Fail("no event delivered")
	}
}

func (s *PublisherTestSuite) TestPublishWithoutListeners() {
	// Nothing queued, nothing failed
	err := s.publisher.Publish(context.Background(), &PublishInput{
		SessionID: "empty-session",
		Event:     EventGameEnded,
	})
	s.Require().NoError(err)
}

func (s *PublisherTestSuite) TestPublishValidation() {
	s.Error(s.publisher.Publish(context.Background(), nil))
	s.Error(s.publisher.Publish(context.Background(), &PublishInput{Event: EventGameEnded}))
	s.Error(s.publisher.Publish(context.Background(), &PublishInput{SessionID: "x"}))
}
