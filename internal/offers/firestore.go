package offers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultCollection = "offers"
	defaultFetchLimit = 500
	defaultCacheTTL   = time.Minute
)

// FirestoreConfig tunes the Firestore-backed offer store.
type FirestoreConfig struct {
	Collection string
	FetchLimit int
	// CacheTTL bounds how long a fetched offer listing may be served without
	// a refetch. The cache is advisory only and never outlives the window.
	CacheTTL time.Duration
	Now      func() time.Time
}

// FirestoreService persists offers in a Cloud Firestore collection. Listing
// reads a recency-ordered snapshot which is cached for a short freshness
// window; writes invalidate the snapshot. Concurrent edits to the same offer
// resolve last-write-wins at the store.
type FirestoreService struct {
	client     *firestore.Client
	collection string
	fetchLimit int
	cacheTTL   time.Duration
	now        func() time.Time

	mu          sync.RWMutex
	cached      []Offer
	cacheExpiry time.Time

	fetchMu sync.Mutex
}

// NewFirestoreService constructs a Firestore-backed offer service.
func NewFirestoreService(client *firestore.Client, cfg FirestoreConfig) *FirestoreService {
	if client == nil {
		panic("offers: firestore client is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = defaultFetchLimit
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &FirestoreService{
		client:     client,
		collection: cfg.Collection,
		fetchLimit: cfg.FetchLimit,
		cacheTTL:   cfg.CacheTTL,
		now:        nowFn,
	}
}

// List returns matching offers, newest first. Status and date bounds narrow
// the snapshot in memory; free-text search has no Firestore counterpart and
// is always evaluated locally.
func (s *FirestoreService) List(ctx context.Context, query Query) ([]Offer, error) {
	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Offer, 0, len(snapshot))
	for _, o := range snapshot {
		if matchesQuery(o, query) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Get returns a single offer straight from the store, bypassing the listing
// cache.
func (s *FirestoreService) Get(ctx context.Context, id string) (Offer, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Offer{}, ErrOfferNotFound
		}
		return Offer{}, fmt.Errorf("offers: get %s: %w", id, err)
	}
	return decodeOffer(snap)
}

// Create persists a new offer built from the draft.
func (s *FirestoreService) Create(ctx context.Context, draft Draft) (Offer, error) {
	now := s.now()
	status := draft.Status
	if !IsValidStatus(status) {
		status = StatusDraft
	}
	o := Offer{
		ID:            uuid.NewString(),
		Status:        status,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		VehicleModel:  draft.VehicleModel,
		VehiclePlate:  draft.VehiclePlate,
		Items:         append([]LineItem(nil), draft.Items...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.client.Collection(s.collection).Doc(o.ID).Set(ctx, o); err != nil {
		return Offer{}, fmt.Errorf("offers: create: %w", err)
	}
	s.invalidate()
	return o, nil
}

// Update applies the patch to an existing offer. The write is a plain Set;
// the store's ordering decides between concurrent editors.
func (s *FirestoreService) Update(ctx context.Context, id string, patch Patch) (Offer, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Offer{}, err
	}
	updated := applyPatch(current, patch)
	updated.UpdatedAt = s.now()
	if _, err := s.client.Collection(s.collection).Doc(id).Set(ctx, updated); err != nil {
		return Offer{}, fmt.Errorf("offers: update %s: %w", id, err)
	}
	s.invalidate()
	return updated, nil
}

func (s *FirestoreService) loadSnapshot(ctx context.Context) ([]Offer, error) {
	now := s.now()

	s.mu.RLock()
	if s.cached != nil && now.Before(s.cacheExpiry) {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	// single flight: only one caller refetches, late arrivals reuse its result
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	s.mu.RLock()
	if s.cached != nil && s.now().Before(s.cacheExpiry) {
		cached := s.cached
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	fetched, err := s.fetchOffers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = fetched
	s.cacheExpiry = s.now().Add(s.cacheTTL)
	s.mu.Unlock()
	return fetched, nil
}

func (s *FirestoreService) fetchOffers(ctx context.Context) ([]Offer, error) {
	iter := s.client.Collection(s.collection).
		OrderBy("createdAt", firestore.Desc).
		Limit(s.fetchLimit).
		Documents(ctx)
	defer iter.Stop()

	var out []Offer
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("offers: list: %w", err)
		}
		o, err := decodeOffer(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if out == nil {
		out = []Offer{}
	}
	return out, nil
}

func (s *FirestoreService) invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.cacheExpiry = time.Time{}
	s.mu.Unlock()
}

func decodeOffer(snap *firestore.DocumentSnapshot) (Offer, error) {
	var o Offer
	if err := snap.DataTo(&o); err != nil {
		return Offer{}, fmt.Errorf("offers: decode %s: %w", snap.Ref.ID, err)
	}
	o.ID = snap.Ref.ID
	return o, nil
}
