package transcript

import (
	"context"
	"fmt"
	"time"

	"fieldassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository archives completed conversations for audit and training-data
// curation downstream.
type Repository interface {
	Archive(ctx context.Context, record *models.TranscriptRecord) error
	ListByDay(ctx context.Context, day time.Time) ([]models.TranscriptRecord, error)
}

// MongoRepository implements Repository on the transcripts collection.
type MongoRepository struct {
	Coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{Coll: db.Collection("transcripts")}
}

// Archive upserts so a re-run of the nightly job is idempotent per session.
func (r *MongoRepository) Archive(ctx context.Context, record *models.TranscriptRecord) error {
	record.ArchivedAt = time.Now()
	record.MessageCount = len(record.Messages)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.Coll.ReplaceOne(ctx, bson.M{"_id": record.SessionID}, record, opts); err != nil {
		return fmt.Errorf("failed to archive transcript %s: %w", record.SessionID, err)
	}
	return nil
}

func (r *MongoRepository) ListByDay(ctx context.Context, day time.Time) ([]models.TranscriptRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	cur, err := r.Coll.Find(ctx, bson.M{"archivedAt": bson.M{"$gte": start, "$lt": end}})
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	defer cur.Close(ctx)

	var records []models.TranscriptRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode transcripts: %w", err)
	}
	return records, nil
}
