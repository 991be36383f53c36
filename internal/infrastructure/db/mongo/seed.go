package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledir/people-api/internal/core/domain"
)

// Seed admin credentials. The password is hashed at seed time and only the
// hash is stored.
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
	seedAdminFullname = "مدیر سیستم"
)

// seedPersons is the original sample data set. Explicit ids keep the records
// stable across environments; the sequence is advanced past them afterwards.
var seedPersons = []personDoc{
	{ID: 1, Name: "محمد امینی", Age: 28, City: "تهران", Job: "برنامه‌نویس", IsActive: true},
	{ID: 2, Name: "سارا محمدی", Age: 34, City: "اصفهان", Job: "طراح", IsActive: true},
	{ID: 3, Name: "علی رضایی", Age: 22, City: "مشهد", Job: "مهندس", IsActive: true},
	{ID: 4, Name: "مریم کریمی", Age: 31, City: "تبریز", Job: "پزشک", IsActive: true},
	{ID: 5, Name: "رضا حسینی", Age: 45, City: "تهران", Job: "حسابدار", IsActive: true},
	{ID: 6, Name: "زهرا نوری", Age: 29, City: "شیراز", Job: "مدیر", IsActive: true},
	{ID: 7, Name: "امیر قاسمی", Age: 37, City: "اصفهان", Job: "معمار", IsActive: true},
	{ID: 8, Name: "نیلوفر احمدی", Age: 26, City: "تهران", Job: "طراح", IsActive: true},
	{ID: 9, Name: "حسن فرهادی", Age: 33, City: "مشهد", Job: "برنامه‌نویس", IsActive: true},
	{ID: 10, Name: "فاطمه شریفی", Age: 24, City: "تبریز", Job: "مهندس", IsActive: true},
	{ID: 11, Name: "کامران جعفری", Age: 41, City: "شیراز", Job: "مدیر", IsActive: true},
	{ID: 12, Name: "شیما صادقی", Age: 38, City: "تهران", Job: "حسابدار", IsActive: true},
}

// Seed populates empty collections with the sample directory records and the
// initial admin account. Non-empty collections are left untouched, so it is
// safe to run on every startup.
func Seed(ctx context.Context, db *mongo.Database, logger zerolog.Logger) error {
	if err := seedPersonRecords(ctx, db, logger); err != nil {
		return err
	}
	return seedAdminAccount(ctx, db, logger)
}

func seedPersonRecords(ctx context.Context, db *mongo.Database, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col := db.Collection(personsCollection)
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count persons: %w", err)
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, len(seedPersons))
	for i, p := range seedPersons {
		docs[i] = p
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed persons: %w", err)
	}

	last := seedPersons[len(seedPersons)-1].ID
	if err := advanceSequence(ctx, db, personsCollection, last); err != nil {
		return err
	}

	logger.Info().Int("count", len(seedPersons)).Msg("seeded person records")
	return nil
}

func seedAdminAccount(ctx context.Context, db *mongo.Database, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col := db.Collection(adminsCollection)
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	doc := adminDoc{
		ID:           1,
		Username:     seedAdminUsername,
		PasswordHash: string(hash),
		Fullname:     seedAdminFullname,
		Role:         domain.RoleAdmin,
		// last_login stays null: nothing in the system ever sets it.
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := advanceSequence(ctx, db, adminsCollection, doc.ID); err != nil {
		return err
	}

	logger.Info().Str("username", seedAdminUsername).Msg("seeded admin account")
	return nil
}
