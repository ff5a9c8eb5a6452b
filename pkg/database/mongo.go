// -----------------------------------------------------------------------------
// MongoDB Connection
// -----------------------------------------------------------------------------
// DB_DRIVER=mongodb olduğunda kişi deposu MongoDB'den okur. Bu dosya
// client'ı kurar, bağlantıyı ping ile doğrular ve kapanışı yönetir.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoClient, mongo.Client ve seçili database için wrapper.
type MongoClient struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *slog.Logger
}

// NewMongoClient, uri'ye bağlanır ve ping atar.
func NewMongoClient(ctx context.Context, uri, dbName string, logger *slog.Logger) (*MongoClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if uri == "" || dbName == "" {
		return nil, fmt.Errorf("mongo uri and database name are required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	m := &MongoClient{client: client, database: client.Database(dbName), logger: logger}

	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("❌ MongoDB bağlantı hatası", "database", dbName, "error", err)
		return nil, fmt.Errorf("mongo connection failed: %w", err)
	}

	logger.Info("✅ MongoDB bağlantısı başarılı", "database", dbName)
	return m, nil
}

// Database, seçili database'i döndürür.
func (m *MongoClient) Database() *mongo.Database {
	return m.database
}

// Ping, sunucunun erişilebilir olup olmadığını kontrol eder.
func (m *MongoClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

// Close, bağlantıyı kapatır.
func (m *MongoClient) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Error("❌ MongoDB kapatma hatası", "error", err)
		return err
	}
	m.logger.Info("MongoDB bağlantısı kapatıldı")
	return nil
}
