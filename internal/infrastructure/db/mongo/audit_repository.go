package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peopledir/people-api/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on MongoDB. The collection
// is append-only as far as the application is concerned: there is no update
// or delete path.
type AuditRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db, col: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID          int64     `bson:"_id"`
	ActorUserID int64     `bson:"actor_user_id"`
	AffectedID  *int64    `bson:"affected_id"`
	Action      string    `bson:"action"`
	Timestamp   time.Time `bson:"timestamp"`
	Details     string    `bson:"details"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, auditCollection)
	if err != nil {
		return err
	}
	entry.ID = id

	doc := auditDoc{
		ID:          entry.ID,
		ActorUserID: entry.ActorUserID,
		AffectedID:  entry.AffectedID,
		Action:      entry.Action,
		Timestamp:   entry.Timestamp,
		Details:     entry.Details,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// FindRecent returns up to limit entries, newest first.
func (r *AuditRepository) FindRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.AuditEntry, 0, limit)
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		entries = append(entries, domain.AuditEntry{
			ID:          doc.ID,
			ActorUserID: doc.ActorUserID,
			AffectedID:  doc.AffectedID,
			Action:      doc.Action,
			Timestamp:   doc.Timestamp,
			Details:     doc.Details,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// EnsureIndexes creates the timestamp index backing the newest-first read.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	return err
}
