package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"newsportal/internal/config"
	"newsportal/internal/db"
	"newsportal/internal/model"
)

// Stores bundles the repositories of one backing store.
type Stores struct {
	Users    UserRepository
	Articles ArticleRepository

	reset   func(ctx context.Context) error
	closeFn func() error
}

// Open connects to the store selected by cfg.StoreDriver and prepares its
// schema: indexes for MongoDB, AutoMigrate for MySQL.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return NewGormStores(gormDB)
	case config.DriverMongo, "":
		client, mdb, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		stores, err := NewMongoStores(ctx, mdb)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		stores.closeFn = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		}
		return stores, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewMongoStores builds repositories over mdb and ensures its indexes.
func NewMongoStores(ctx context.Context, mdb *mongo.Database) (*Stores, error) {
	if err := EnsureMongoIndexes(ctx, mdb); err != nil {
		return nil, err
	}
	return &Stores{
		Users:    NewMongoUserRepository(mdb),
		Articles: NewMongoArticleRepository(mdb),
		reset: func(ctx context.Context) error {
			for _, name := range []string{ColArticles, ColUsers} {
				if err := mdb.Collection(name).Drop(ctx); err != nil {
					return fmt.Errorf("drop %s: %w", name, err)
				}
			}
			return EnsureMongoIndexes(ctx, mdb)
		},
	}, nil
}

// NewGormStores builds repositories over gormDB and migrates its tables.
func NewGormStores(gormDB *gorm.DB) (*Stores, error) {
	if err := gormDB.AutoMigrate(&model.User{}, &model.Article{}, &articleTag{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return &Stores{
		Users:    NewUserRepository(gormDB),
		Articles: NewArticleRepository(gormDB),
		reset: func(ctx context.Context) error {
			if err := gormDB.WithContext(ctx).Migrator().DropTable(&articleTag{}, &model.Article{}, &model.User{}); err != nil {
				return fmt.Errorf("drop tables: %w", err)
			}
			return gormDB.WithContext(ctx).AutoMigrate(&model.User{}, &model.Article{}, &articleTag{})
		},
		closeFn: func() error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

// Reset drops every collection or table and recreates the schema.
func (s *Stores) Reset(ctx context.Context) error {
	if s.reset == nil {
		return nil
	}
	return s.reset(ctx)
}

// Close releases the store connection.
func (s *Stores) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}
