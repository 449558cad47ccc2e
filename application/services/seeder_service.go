package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"menuapi/application/ports"
	"menuapi/domain/entities"
)

//go:embed data/prepared_data.json
var preparedData []byte

// SeederService loads the canonical demo tree into empty storage. The whole
// insert runs in one transaction inside the seed repository; the cache is
// flushed only after the commit so reads repopulate from the new rows.
type SeederService struct {
	seeds  ports.SeedRepository
	cache  ports.Cache
	logger *zap.Logger
}

// NewSeederService creates a seeder service.
func NewSeederService(seeds ports.SeedRepository, c ports.Cache, logger *zap.Logger) *SeederService {
	return &SeederService{seeds: seeds, cache: c, logger: logger}
}

// Generate inserts the fixture tree. Any failure rolls the whole insert back.
func (s *SeederService) Generate(ctx context.Context) (*entities.Message, error) {
	menus, err := loadFixture()
	if err != nil {
		return nil, err
	}

	if err := s.seeds.Seed(ctx, menus); err != nil {
		return nil, err
	}

	if err := s.cache.ClearAll(ctx); err != nil {
		s.logger.Warn("Cache flush after seeding failed", zap.Error(err))
	}

	s.logger.Info("Test data created", zap.Int("menus", len(menus)))
	return &entities.Message{Status: true, Message: "test data created"}, nil
}

func loadFixture() ([]entities.MenuNode, error) {
	var menus []entities.MenuNode
	if err := json.Unmarshal(preparedData, &menus); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	return menus, nil
}
