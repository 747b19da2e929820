package offers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StaticService provides deterministic offer data suitable for local
// development and tests. It honors the full Service contract, including
// filter semantics, against an in-memory store.
type StaticService struct {
	mu     sync.RWMutex
	byID   map[string]Offer
	now    func() time.Time
	nextID func() string
}

// NewStaticService returns a StaticService populated with representative
// offers.
func NewStaticService() *StaticService {
	now := time.Now().UTC()

	svc := &StaticService{
		byID:   map[string]Offer{},
		now:    func() time.Time { return time.Now().UTC() },
		nextID: func() string { return uuid.NewString() },
	}

	seed := []Offer{
		{
			ID:            "offer-1042",
			Status:        StatusSent,
			CustomerName:  "Георги Иванов",
			CustomerPhone: "+359 88 123 4567",
			VehicleModel:  "E220 CDI W213",
			VehiclePlate:  "CB 1234 AH",
			Items: []LineItem{
				{Description: "Смяна на масло и филтри", Hours: 1.5, PriceMinor: 18000},
				{Description: "Компютърна диагностика", Hours: 0.5, PriceMinor: 6000},
			},
			CreatedAt: now.Add(-72 * time.Hour),
			UpdatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:            "offer-1043",
			Status:        StatusDraft,
			CustomerName:  "Мария Петрова",
			CustomerPhone: "+359 89 765 4321",
			VehicleModel:  "GLC 250 X253",
			VehiclePlate:  "A 5678 KT",
			Items: []LineItem{
				{Description: "Смяна на накладки и дискове предна ос", Hours: 2.25, PriceMinor: 42000},
			},
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:            "offer-1044",
			Status:        StatusAccepted,
			CustomerName:  "Stefan Dimitrov",
			CustomerPhone: "+359 87 555 0101",
			VehicleModel:  "C200 W205",
			VehiclePlate:  "PB 9012 MH",
			Items: []LineItem{
				{Description: "Ремонт на окачване", Hours: 4, PriceMinor: 76000},
				{Description: "Реглаж на преден мост", Hours: 1, PriceMinor: 9000},
			},
			CreatedAt: now.Add(-6 * time.Hour),
			UpdatedAt: now.Add(-1 * time.Hour),
		},
	}
	for _, o := range seed {
		svc.byID[o.ID] = o
	}
	return svc
}

// List returns matching offers, newest first.
func (s *StaticService) List(_ context.Context, query Query) ([]Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Offer, 0, len(s.byID))
	for _, o := range s.byID {
		if matchesQuery(o, query) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns a single offer or ErrOfferNotFound.
func (s *StaticService) Get(_ context.Context, id string) (Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[id]
	if !ok {
		return Offer{}, ErrOfferNotFound
	}
	return o, nil
}

// Create persists a new offer built from the draft.
func (s *StaticService) Create(_ context.Context, draft Draft) (Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	status := draft.Status
	if !IsValidStatus(status) {
		status = StatusDraft
	}
	o := Offer{
		ID:            s.nextID(),
		Status:        status,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		VehicleModel:  draft.VehicleModel,
		VehiclePlate:  draft.VehiclePlate,
		Items:         append([]LineItem(nil), draft.Items...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.byID[o.ID] = o
	return o, nil
}

// Update applies the patch to an existing offer, last write wins.
func (s *StaticService) Update(_ context.Context, id string, patch Patch) (Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.byID[id]
	if !ok {
		return Offer{}, ErrOfferNotFound
	}
	o = applyPatch(o, patch)
	o.UpdatedAt = s.now()
	s.byID[id] = o
	return o, nil
}
