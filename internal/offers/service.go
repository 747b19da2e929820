package offers

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Status represents the lifecycle state of an offer.
type Status string

const (
	// StatusDraft indicates the offer is still being prepared.
	StatusDraft Status = "draft"
	// StatusSent indicates the offer was sent to the customer.
	StatusSent Status = "sent"
	// StatusAccepted indicates the customer accepted the offer.
	StatusAccepted Status = "accepted"
	// StatusRejected indicates the customer declined the offer.
	StatusRejected Status = "rejected"
)

// StatusAll is the query value matching every status.
const StatusAll Status = "all"

// ErrOfferNotFound is returned when an offer does not exist.
var ErrOfferNotFound = errors.New("offer not found")

// Statuses lists every concrete status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusSent, StatusAccepted, StatusRejected}
}

// IsValidStatus reports whether value names a concrete status.
func IsValidStatus(value Status) bool {
	switch value {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// LineItem is one work position on an offer. Hours is always the normalized
// decimal representation; see ParseHours.
type LineItem struct {
	Description string  `firestore:"description" json:"description"`
	Hours       float64 `firestore:"hours" json:"hours"`
	PriceMinor  int64   `firestore:"priceMinor" json:"priceMinor"`
}

// Offer is a service quote / work order managed in the admin area. Offers are
// created and mutated only through a Service; page code never constructs them
// ad hoc.
type Offer struct {
	ID            string     `firestore:"-" json:"id"`
	Status        Status     `firestore:"status" json:"status"`
	CustomerName  string     `firestore:"customerName" json:"customerName"`
	CustomerPhone string     `firestore:"customerPhone" json:"customerPhone"`
	VehicleModel  string     `firestore:"vehicleModel" json:"vehicleModel"`
	VehiclePlate  string     `firestore:"vehiclePlate" json:"vehiclePlate"`
	Items         []LineItem `firestore:"items" json:"items"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// TotalHours sums the normalized line item durations.
func (o Offer) TotalHours() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Hours
	}
	return total
}

// TotalMinor sums line item prices in minor currency units.
func (o Offer) TotalMinor() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.PriceMinor
	}
	return total
}

// Query captures the list filter: status equality (or all), free-text search,
// and an inclusive creation-date range with optional bounds.
type Query struct {
	Status      Status
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Draft holds the fields accepted when creating an offer.
type Draft struct {
	Status        Status
	CustomerName  string
	CustomerPhone string
	VehicleModel  string
	VehiclePlate  string
	Items         []LineItem
}

// Patch holds optional field updates; nil fields are left untouched.
// Concurrent edits resolve last-write-wins at the store.
type Patch struct {
	Status        *Status
	CustomerName  *string
	CustomerPhone *string
	VehicleModel  *string
	VehiclePlate  *string
	Items         *[]LineItem
}

// Service manages offer records against the external structured store.
type Service interface {
	// List returns offers matching the query, newest first.
	List(ctx context.Context, query Query) ([]Offer, error)

	// Get returns a single offer or ErrOfferNotFound.
	Get(ctx context.Context, id string) (Offer, error)

	// Create persists a new offer built from the draft.
	Create(ctx context.Context, draft Draft) (Offer, error)

	// Update applies the patch to an existing offer and returns the result.
	Update(ctx context.Context, id string, patch Patch) (Offer, error)
}

// matchesQuery evaluates the list filter against one offer. Shared by the
// Firestore and static services so filter semantics cannot diverge.
func matchesQuery(o Offer, q Query) bool {
	if q.Status != "" && q.Status != StatusAll && o.Status != q.Status {
		return false
	}
	if q.CreatedFrom != nil && o.CreatedAt.Before(*q.CreatedFrom) {
		return false
	}
	if q.CreatedTo != nil && o.CreatedAt.After(*q.CreatedTo) {
		return false
	}
	if search := strings.TrimSpace(strings.ToLower(q.Search)); search != "" {
		haystack := strings.ToLower(strings.Join(append([]string{
			o.CustomerName, o.CustomerPhone, o.VehicleModel, o.VehiclePlate,
		}, itemDescriptions(o.Items)...), "\n"))
		if !strings.Contains(haystack, search) {
			return false
		}
	}
	return true
}

func itemDescriptions(items []LineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Description)
	}
	return out
}

func applyPatch(o Offer, patch Patch) Offer {
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.CustomerName != nil {
		o.CustomerName = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		o.CustomerPhone = *patch.CustomerPhone
	}
	if patch.VehicleModel != nil {
		o.VehicleModel = *patch.VehicleModel
	}
	if patch.VehiclePlate != nil {
		o.VehiclePlate = *patch.VehiclePlate
	}
	if patch.Items != nil {
		o.Items = append([]LineItem(nil), (*patch.Items)...)
	}
	return o
}
