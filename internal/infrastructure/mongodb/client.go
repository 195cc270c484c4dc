package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gudangmaju/motorparts-api/pkg/config"
)

const (
	collParts        = "parts"
	collTransactions = "transactions"
	collUsers        = "users"
)

// Client envuelve la conexión a MongoDB y expone la base de datos del sistema.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient conecta y verifica la instancia de MongoDB.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts := options.Client().ApplyURI(cfg.Mongo.URI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Client{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
	}, nil
}

// Database devuelve la base de datos activa.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// EnsureIndexes crea los índices de unicidad que el modelo requiere.
// Es idempotente: Mongo ignora índices que ya existen con la misma definición.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	partIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "barcode", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}
	if _, err := c.db.Collection(collParts).Indexes().CreateMany(ctx, partIndexes); err != nil {
		return fmt.Errorf("create part indexes: %w", err)
	}

	txIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "occurred_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "type", Value: 1}, {Key: "occurred_at", Value: -1}},
		},
	}
	if _, err := c.db.Collection(collTransactions).Indexes().CreateMany(ctx, txIndexes); err != nil {
		return fmt.Errorf("create transaction indexes: %w", err)
	}

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.db.Collection(collUsers).Indexes().CreateOne(ctx, userIndex); err != nil {
		return fmt.Errorf("create user index: %w", err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
