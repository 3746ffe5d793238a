package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/edu-platform/internal/domain/repository"
)

const (
	usersCollection         = "users"
	coursesCollection       = "courses"
	projectsCollection      = "projects"
	opportunitiesCollection = "opportunities"
)

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique email index and the listing indexes. Safe to rerun.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		}},
		coursesCollection: {{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: seqField, Value: -1}}}},
		projectsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: seqField, Value: -1}}},
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
			{Keys: bson.D{{Key: "collaborators", Value: 1}}},
		},
		opportunitiesCollection: {
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}, {Key: seqField, Value: -1}}},
			{Keys: bson.D{{Key: "applicants.user_id", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// NewStore wires every repository to db. transactions requires a replica set.
func NewStore(client *mongo.Client, db *mongo.Database, transactions bool) *repository.Store {
	return &repository.Store{
		Users:         NewUserRepository(db),
		Courses:       NewCourseRepository(db),
		Projects:      NewProjectRepository(db),
		Opportunities: NewOpportunityRepository(db),
		Tx:            &Transactor{client: client, enabled: transactions},
	}
}

// Transactor runs fn inside a session transaction when enabled, and directly otherwise.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}
