package source

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/jsonscope/pkg/errors"
)

// MongoConfig configures a MongoDB document source.
type MongoConfig struct {
	URI        string // connection string, e.g. "mongodb://localhost:27017"
	Database   string
	Collection string
	ID         string // _id of the document to load
}

// MongoSource loads a single document from a MongoDB collection by _id.
type MongoSource struct {
	cfg MongoConfig
}

// NewMongoSource creates a source for the configured document.
func NewMongoSource(cfg MongoConfig) *MongoSource {
	return &MongoSource{cfg: cfg}
}

// Load connects, fetches the document, and converts it to a plain value.
func (s *MongoSource) Load(ctx context.Context) (any, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to MongoDB")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	coll := client.Database(s.cfg.Database).Collection(s.cfg.Collection)

	var doc bson.M
	err = coll.FindOne(ctx, bson.M{"_id": s.cfg.ID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		// _id values are often ObjectIDs rather than plain strings.
		if oid, oidErr := bsonObjectID(s.cfg.ID); oidErr == nil {
			err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
		}
	}
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "document %q not found in %s.%s", s.cfg.ID, s.cfg.Database, s.cfg.Collection)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query MongoDB")
	}

	return normalizeBSON(doc)
}

func bsonObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}

// normalizeBSON converts BSON-specific types (ObjectID, DateTime, int32)
// into the plain JSON value set via a JSON round-trip.
func normalizeBSON(doc bson.M) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "normalize document")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "normalize document")
	}
	return v, nil
}
