// Package mongo implements the persistence ports on MongoDB: directory
// records, admin accounts, the append-only audit trail, and the integer id
// sequences they share.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names. Person and admin ids are plain integers kept in _id;
// the counters collection holds the per-collection sequences behind them.
const (
	personsCollection  = "persons"
	adminsCollection   = "admin_accounts"
	auditCollection    = "audit_log"
	countersCollection = "counters"
)

// Config captures the settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a client, verifies connectivity with a ping, and returns
// both the client and the selected database. A default timeout applies when
// none is configured.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// nextSequence atomically increments and returns the named counter. The first
// call for a name upserts the counter document and yields 1.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return doc.Seq, nil
}

// advanceSequence raises the named counter to at least value. Seeding uses it
// so records inserted with explicit ids never collide with later inserts.
func advanceSequence(ctx context.Context, db *mongo.Database, name string, value int64) error {
	opts := options.Update().SetUpsert(true)
	_, err := db.Collection(countersCollection).
		UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$max": bson.M{"seq": value}}, opts)
	if err != nil {
		return fmt.Errorf("advance sequence %q: %w", name, err)
	}
	return nil
}
