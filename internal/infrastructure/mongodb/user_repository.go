package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

// emailCollation matches the unique index so email lookups ignore case.
var emailCollation = &options.Collation{Locale: "en", Strength: 2}

type UserRepository struct {
	col  *mongo.Collection
	docs documents[*entity.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	col := db.Collection(usersCollection)
	return &UserRepository{col: col, docs: documents[*entity.User]{col: col}}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.Normalize()
	doc, err := fields(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	doc["_id"] = u.ID
	doc[seqField] = primitive.NewObjectID()
	_, err = r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.docs.get(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.col.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(emailCollation)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.Normalize()
	doc, err := fields(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": doc})
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return r.docs.find(ctx, bson.M{}, newestFirst)
}

func (r *UserRepository) Summaries(ctx context.Context, ids []string) (map[string]entity.UserSummary, error) {
	out := make(map[string]entity.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("user summaries: %w", err)
	}
	var found []entity.UserSummary
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, s := range found {
		out[s.ID] = s
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
