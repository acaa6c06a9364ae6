package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
)

const snapshotCollection = "weekly_snapshots"

// Repository defines the interface for snapshot storage.
type Repository interface {
	SaveWeeklySnapshot(ctx context.Context, snapshot models.WeeklySnapshot) error
	LatestSnapshots(ctx context.Context, limit int64) ([]models.WeeklySnapshot, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: snapshotCollection,
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveWeeklySnapshot saves a weekly snapshot, replacing any earlier one for the same week.
func (r *MongoDBRepository) SaveWeeklySnapshot(ctx context.Context, snapshot models.WeeklySnapshot) error {
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	filter := bson.M{"from": snapshot.From, "to": snapshot.To}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection().ReplaceOne(ctx, filter, snapshot, opts); err != nil {
		return fmt.Errorf("failed to save weekly snapshot: %w", err)
	}
	return nil
}

// LatestSnapshots returns up to limit snapshots, most recent week first.
func (r *MongoDBRepository) LatestSnapshots(ctx context.Context, limit int64) ([]models.WeeklySnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "from", Value: -1}}).SetLimit(limit)
	cur, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly snapshots: %w", err)
	}

	var out []models.WeeklySnapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode weekly snapshots: %w", err)
	}
	return out, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
