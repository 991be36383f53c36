package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peopledir/people-api/internal/core/domain"
)

// AdminRepository implements ports.AdminRepository on MongoDB.
type AdminRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{db: db, col: db.Collection(adminsCollection)}
}

type adminDoc struct {
	ID           int64      `bson:"_id"`
	Username     string     `bson:"username"`
	PasswordHash string     `bson:"password_hash"`
	Fullname     string     `bson:"fullname"`
	Role         string     `bson:"role"`
	LastLogin    *time.Time `bson:"last_login"`
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	return &domain.AdminAccount{
		ID:           doc.ID,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Fullname:     doc.Fullname,
		Role:         doc.Role,
		LastLogin:    doc.LastLogin,
	}, nil
}

func (r *AdminRepository) Insert(ctx context.Context, account *domain.AdminAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if account.ID == 0 {
		id, err := nextSequence(ctx, r.db, adminsCollection)
		if err != nil {
			return err
		}
		account.ID = id
	}

	doc := adminDoc{
		ID:           account.ID,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Fullname:     account.Fullname,
		Role:         account.Role,
		LastLogin:    account.LastLogin,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAdminExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique username index.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
