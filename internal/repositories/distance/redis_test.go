package distance

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/geodraw/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetRecord() {
	record := &models.DistanceRecord{
		GameID:   "test-game-id",
		Username: "alice",
		LastLocation: models.Location{
			Latitude:    51.5,
			Longitude:   -0.12,
			TimestampMs: 1700000000000,
		},
		TotalDistanceMeters: 42.5,
		Sequence:            3,
		LastUpdated:         time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{Record: record})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		GameID:   "test-game-id",
		Username: "alice",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("alice", retrieved.Username)
	s.Equal(42.5, retrieved.TotalDistanceMeters)
	s.Equal(int64(3), retrieved.Sequence)
	s.Equal(51.5, retrieved.LastLocation.Latitude)
	s.Equal(int64(1700000000000), retrieved.LastLocation.TimestampMs)
}

func (s *RedisRepositoryTestSuite) TestGetRecordNotFound() {
	_, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		GameID:   "test-game-id",
		Username: "nobody",
	})
	s.Require().ErrorIs(err, ErrRecordNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetRecordCorrupt() {
	s.Require().NoError(s.mr.Set("distance:test-game-id:alice", "oops"))

	_, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		GameID:   "test-game-id",
		Username: "alice",
	})
	s.Require().ErrorIs(err, ErrCorruptRecord)
}

func (s *RedisRepositoryTestSuite) TestGetRecordsByGame() {
	for _, username := range []string{"alice", "bob", "carol"} {
		err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
			Record: &models.DistanceRecord{
				GameID:   "test-game-id",
				Username: username,
			},
		})
		s.Require().NoError(err)
	}

	// A record in another game must not leak in
	err := s.repo.SaveRecord(context.Background(), &SaveRecordInput{
		Record: &models.DistanceRecord{
			GameID:   "other-game",
			Username: "dave",
		},
	})
	s.Require().NoError(err)

	records, err := s.repo.GetRecordsByGame(context.Background(), &GetRecordsByGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)
	s.Require().Len(records, 3)

	usernames := make([]string, 0, len(records))
	for _, record := range records {
		usernames = append(usernames, record.Username)
	}
	s.ElementsMatch([]string{"alice", "bob", "carol"}, usernames)
}

func (s *RedisRepositoryTestSuite) TestGetRecordsByGameEmpty() {
	records, err := s.repo.GetRecordsByGame(context.Background(), &GetRecordsByGameInput{
		GameID: "no-such-game",
	})
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *RedisRepositoryTestSuite) TestSaveRecordOverwrites() {
	record := &models.DistanceRecord{
		GameID:              "test-game-id",
		Username:            "alice",
		TotalDistanceMeters: 10,
		Sequence:            0,
	}
	s.Require().NoError(s.repo.SaveRecord(context.Background(), &SaveRecordInput{Record: record}))

	record.TotalDistanceMeters = 25
	record.Sequence = 1
	s.Require().NoError(s.repo.SaveRecord(context.Background(), &SaveRecordInput{Record: record}))

	retrieved, err := s.repo.GetRecord(context.Background(), &GetRecordInput{
		GameID:   "test-game-id",
		Username: "alice",
	})
	s.Require().NoError(err)
	s.Equal(25.0, retrieved.TotalDistanceMeters)
	s.Equal(int64(1), retrieved.Sequence)

	// The game index must not gain a duplicate member
	records, err := s.repo.GetRecordsByGame(context.Background(), &GetRecordsByGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)
	s.Len(records, 1)
}
