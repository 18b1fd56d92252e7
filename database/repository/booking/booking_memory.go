package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"fieldassist/models"
	"fieldassist/utils"

	"github.com/google/uuid"
)

// MemoryStore implements Store in memory for local development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	slots    map[string]*models.Slot
	bookings map[string]*models.BookingConfirmation
	leads    []*models.Lead
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:    make(map[string]*models.Slot),
		bookings: make(map[string]*models.BookingConfirmation),
	}
}

// AddSlot seeds a slot. Intended for fixtures.
func (s *MemoryStore) AddSlot(slot models.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := slot
	s.slots[slot.ID] = &cp
}

func (s *MemoryStore) GetSlot(_ context.Context, slotID string) (*models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return nil, fmt.Errorf("slot %s not found", slotID)
	}
	cp := *slot
	return &cp, nil
}

func (s *MemoryStore) ListOpenSlots(_ context.Context, serviceType, fromDate string, sameDayFeeWaived bool, limit int) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Slot
	for _, slot := range s.slots {
		if slot.Booked || slot.ServiceType != serviceType || slot.Date < fromDate {
			continue
		}
		if sameDayFeeWaived && slot.Date == fromDate {
			slot.FeeWaived = true
		}
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) CommitBooking(_ context.Context, req CommitRequest) (*models.BookingConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[req.SlotID]
	if !ok {
		return nil, fmt.Errorf("slot %s not found", req.SlotID)
	}
	if slot.Booked {
		return nil, &utils.ConflictError{SlotID: req.SlotID}
	}
	slot.Booked = true

	day, err := time.ParseInLocation("2006-01-02", slot.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("slot %s has malformed date %q: %w", slot.ID, slot.Date, err)
	}
	confirmation := &models.BookingConfirmation{
		JobID:                uuid.New().String(),
		SlotID:               slot.ID,
		CustomerID:           req.CustomerID,
		ScheduledStart:       day.Add(time.Duration(slot.Start) * time.Minute),
		ScheduledEnd:         day.Add(time.Duration(slot.End) * time.Minute),
		ArrivalWindowMinutes: arrivalWindowMinutes,
		FeeWaived:            slot.FeeWaived,
		CreatedAt:            time.Now(),
	}
	s.bookings[confirmation.JobID] = confirmation
	cp := *confirmation
	return &cp, nil
}

func (s *MemoryStore) SaveLead(_ context.Context, lead *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	lead.CreatedAt = time.Now()
	cp := *lead
	s.leads = append(s.leads, &cp)
	return nil
}

// Leads returns the captured leads. Intended for assertions.
func (s *MemoryStore) Leads() []*models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}
