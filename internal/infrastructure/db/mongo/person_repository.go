package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peopledir/people-api/internal/core/domain"
	"github.com/peopledir/people-api/internal/core/ports"
)

// PersonRepository implements ports.PersonRepository on MongoDB.
type PersonRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewPersonRepository(db *mongo.Database) *PersonRepository {
	return &PersonRepository{db: db, col: db.Collection(personsCollection)}
}

type personDoc struct {
	ID       int64  `bson:"_id"`
	Name     string `bson:"name"`
	Age      int    `bson:"age"`
	City     string `bson:"city"`
	Job      string `bson:"job"`
	IsActive bool   `bson:"is_active"`
}

func toPersonDoc(p *domain.Person) personDoc {
	return personDoc{
		ID:       p.ID,
		Name:     p.Name,
		Age:      p.Age,
		City:     p.City,
		Job:      p.Job,
		IsActive: p.IsActive,
	}
}

func (d personDoc) toDomain() domain.Person {
	return domain.Person{
		ID:       d.ID,
		Name:     d.Name,
		Age:      d.Age,
		City:     d.City,
		Job:      d.Job,
		IsActive: d.IsActive,
	}
}

// buildPersonFilter translates the optional list filters into a Mongo filter
// document. Name, city and job are case-insensitive substring matches; age is
// a case-insensitive prefix match against the age rendered as text, which is
// why it goes through $expr with $toString rather than a plain field regex.
func buildPersonFilter(f ports.PersonFilter) bson.M {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(f.Name), "$options": "i"}
	}
	if f.City != "" {
		filter["city"] = bson.M{"$regex": regexp.QuoteMeta(f.City), "$options": "i"}
	}
	if f.Job != "" {
		filter["job"] = bson.M{"$regex": regexp.QuoteMeta(f.Job), "$options": "i"}
	}
	if f.Age != "" {
		filter["$expr"] = bson.M{"$regexMatch": bson.M{
			"input":   bson.M{"$toString": "$age"},
			"regex":   "^" + regexp.QuoteMeta(f.Age),
			"options": "i",
		}}
	}
	return filter
}

func (r *PersonRepository) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc personDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPersonNotFound
		}
		return nil, fmt.Errorf("find person: %w", err)
	}

	person := doc.toDomain()
	return &person, nil
}

// FindPage returns one id-ordered page of matching records and the total
// count of matches before pagination. A page past the end is an empty slice,
// not an error.
func (r *PersonRepository) FindPage(ctx context.Context, filter ports.PersonFilter, page, perPage int) ([]domain.Person, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildPersonFilter(filter)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count persons: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page-1) * int64(perPage)).
		SetLimit(int64(perPage))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find persons: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.Person, 0, perPage)
	for cursor.Next(ctx) {
		var doc personDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode person: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate persons: %w", err)
	}

	return items, total, nil
}

func (r *PersonRepository) Insert(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, personsCollection)
	if err != nil {
		return err
	}
	p.ID = id

	if _, err := r.col.InsertOne(ctx, toPersonDoc(p)); err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *PersonRepository) Update(ctx context.Context, p *domain.Person) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPersonDoc(p))
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}
