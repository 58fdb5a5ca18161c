package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jmichalek/netlayout/pkg/errors"
)

const collectionName = "topologies"

// MongoStore is a MongoDB-backed store for server deployments.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures
// the unique name index exists.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	coll := client.Database(database).Collection(collectionName)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create name index")
	}

	return &MongoStore{client: client, collection: coll}, nil
}

// Save inserts or updates a record, keyed by its unique name.
func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	var existing *Record
	if found, err := s.GetByName(ctx, rec.Name); err == nil {
		existing = found
	} else if !errors.Is(err, errors.ErrCodeTopologyNotFound) {
		return err
	}

	if err := prepare(rec, existing); err != nil {
		return err
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": rec.ID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save topology %q", rec.Name)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	return s.findOne(ctx, bson.M{"_id": id}, "id", id)
}

// GetByName retrieves a record by name.
func (s *MongoStore) GetByName(ctx context.Context, name string) (*Record, error) {
	return s.findOne(ctx, bson.M{"name": name}, "name", name)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, what, key string) (*Record, error) {
	var rec Record
	err := s.collection.FindOne(ctx, filter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(what, key)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load topology %s %q", what, key)
	}
	return &rec, nil
}

// List returns all records sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	cur, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list topologies")
	}
	defer cur.Close(ctx)

	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode topologies")
	}
	return out, nil
}

// Delete removes a record by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete topology %q", id)
	}
	if res.DeletedCount == 0 {
		return notFound("id", id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
