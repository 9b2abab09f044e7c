package overrides

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// layoutDocID is the _id of the single saved-layout document.
const layoutDocID = "layout"

// layoutDoc wraps the override for storage under a fixed document ID.
type layoutDoc struct {
	ID       string    `bson:"_id"`
	Override *Override `bson:"override"`
}

// MongoStore persists the override in a MongoDB collection as a single
// document with a fixed _id. Suitable for deployments where several
// instances share the saved layout.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

func (c MongoConfig) withDefaults() MongoConfig {
	if c.Database == "" {
		c.Database = "reeflow"
	}
	if c.Collection == "" {
		c.Collection = "layouts"
	}
	return c
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	cfg = cfg.withDefaults()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context) (*Override, error) {
	var doc layoutDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": layoutDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	if doc.Override == nil {
		return nil, ErrNotFound
	}
	return doc.Override, nil
}

func (s *MongoStore) Save(ctx context.Context, o *Override) error {
	opts := options.Replace().SetUpsert(true)
	doc := layoutDoc{ID: layoutDocID, Override: o}
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": layoutDocID}, doc, opts); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": layoutDocID}); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
