package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldassist/models"
	"fieldassist/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const arrivalWindowMinutes = 120

// MongoStore implements Store against the slots and bookings collections.
type MongoStore struct {
	Slots    *mongo.Collection
	Bookings *mongo.Collection
	Leads    *mongo.Collection
}

// NewMongoStore wires a Store onto the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		Slots:    db.Collection("slots"),
		Bookings: db.Collection("bookings"),
		Leads:    db.Collection("leads"),
	}
}

func (s *MongoStore) GetSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	var slot models.Slot
	err := s.Slots.FindOne(ctx, bson.M{"_id": slotID}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("slot %s not found", slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	return &slot, nil
}

func (s *MongoStore) ListOpenSlots(ctx context.Context, serviceType, fromDate string, sameDayFeeWaived bool, limit int) ([]models.Slot, error) {
	if sameDayFeeWaived {
		// Persist the waiver on today's open slots so a later commit sees the
		// flag exactly as it was offered.
		_, err := s.Slots.UpdateMany(ctx,
			bson.M{"serviceType": serviceType, "date": fromDate, "booked": false},
			bson.M{"$set": bson.M{"feeWaived": true}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to stamp fee waiver: %w", err)
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := s.Slots.Find(ctx,
		bson.M{"serviceType": serviceType, "date": bson.M{"$gte": fromDate}, "booked": false},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer cur.Close(ctx)

	var slots []models.Slot
	if err := cur.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}
	return slots, nil
}

// CommitBooking flips the slot's booked flag and inserts the booking record.
// The filter requires booked=false, so only one concurrent caller can win; the
// loser sees no matching document and gets a ConflictError.
func (s *MongoStore) CommitBooking(ctx context.Context, req CommitRequest) (*models.BookingConfirmation, error) {
	var slot models.Slot
	err := s.Slots.FindOneAndUpdate(ctx,
		bson.M{"_id": req.SlotID, "booked": false},
		bson.M{"$set": bson.M{"booked": true}},
	).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the slot does not exist or someone else just took it.
		if _, lookupErr := s.GetSlot(ctx, req.SlotID); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, &utils.ConflictError{SlotID: req.SlotID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to commit slot: %w", err)
	}

	day, err := time.ParseInLocation("2006-01-02", slot.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("slot %s has malformed date %q: %w", slot.ID, slot.Date, err)
	}

	confirmation := models.BookingConfirmation{
		JobID:                uuid.New().String(),
		SlotID:               slot.ID,
		CustomerID:           req.CustomerID,
		ScheduledStart:       day.Add(time.Duration(slot.Start) * time.Minute),
		ScheduledEnd:         day.Add(time.Duration(slot.End) * time.Minute),
		ArrivalWindowMinutes: arrivalWindowMinutes,
		FeeWaived:            slot.FeeWaived,
		CreatedAt:            time.Now(),
	}
	if _, err := s.Bookings.InsertOne(ctx, confirmation); err != nil {
		// Roll the slot back so it can be booked again.
		if _, rbErr := s.Slots.UpdateOne(ctx,
			bson.M{"_id": req.SlotID},
			bson.M{"$set": bson.M{"booked": false}},
		); rbErr != nil {
			utils.GetLogger().Error("failed to release slot after insert failure")
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}
	return &confirmation, nil
}

func (s *MongoStore) SaveLead(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	lead.CreatedAt = time.Now()
	if _, err := s.Leads.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}
