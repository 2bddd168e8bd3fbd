// Package infrastructure selects and opens the survey store backend.
package infrastructure

import (
	"context"
	"fmt"

	"github.com/sngm3741/student-survey/api/internal/config"
	"github.com/sngm3741/student-survey/api/internal/infrastructure/memory"
	mongodoc "github.com/sngm3741/student-survey/api/internal/infrastructure/mongo"
	"github.com/sngm3741/student-survey/api/internal/infrastructure/sqlstore"
	"github.com/sngm3741/student-survey/api/internal/survey/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is a survey repository whose connection can be checked and released.
type Store interface {
	application.SurveyRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open creates the Store named by cfg.StoreBackend.
//
//	"mongo"    - MongoDB at cfg.MongoURI (default)
//	"sqlite"   - SQLite database at cfg.SQLitePath
//	"postgres" - PostgreSQL at cfg.PostgresURL
//	"memory"   - in-memory (ephemeral, for testing)
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo, "":
		return openMongo(ctx, cfg)
	case config.BackendSQLite:
		repo, err := sqlstore.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.BackendPostgres:
		repo, err := sqlstore.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.BackendMemory:
		return memory.NewSurveyRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: mongo, sqlite, postgres, memory)", cfg.StoreBackend)
	}
}

// mongoStore ties the repository to the client it must disconnect on Close.
type mongoStore struct {
	*mongodoc.SurveyRepository
	client *mongo.Client
}

func openMongo(ctx context.Context, cfg config.Config) (Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	repo := mongodoc.NewSurveyRepository(client.Database(cfg.MongoDatabase), cfg.SurveyCollection, cfg.CounterCollection)
	return &mongoStore{SurveyRepository: repo, client: client}, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
