package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names the domain event published after a committed change
type EventType string

const (
	EventBookingCreated   EventType = "BOOKING_CREATED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
	EventOrderPlaced      EventType = "ORDER_PLACED"
	EventOrderCancelled   EventType = "ORDER_CANCELLED"
)

// DomainEvent is the message body written to the booking events topic
type DomainEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	TouristID  uuid.UUID `json:"tourist_id"`
	SubjectID  uuid.UUID `json:"subject_id"`
	Kind       string    `json:"kind,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	Balance    string    `json:"wallet_balance,omitempty"`
	BookedDate string    `json:"booked_date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventBuilder assembles a DomainEvent
type EventBuilder struct {
	event *DomainEvent
}

func NewEventBuilder(eventType EventType) *EventBuilder {
	return &EventBuilder{
		event: &DomainEvent{
			ID:         uuid.New(),
			Type:       eventType,
			OccurredAt: time.Now().UTC(),
		},
	}
}

func (b *EventBuilder) WithTourist(touristID uuid.UUID) *EventBuilder {
	b.event.TouristID = touristID
	return b
}

// WithSubject sets the listing or order the event is about
func (b *EventBuilder) WithSubject(subjectID uuid.UUID, kind string) *EventBuilder {
	b.event.SubjectID = subjectID
	b.event.Kind = kind
	return b
}

func (b *EventBuilder) WithAmount(amount, walletBalance string) *EventBuilder {
	b.event.Amount = amount
	b.event.Balance = walletBalance
	return b
}

func (b *EventBuilder) WithBookedDate(date string) *EventBuilder {
	b.event.BookedDate = date
	return b
}

func (b *EventBuilder) Build() *DomainEvent {
	return b.event
}

// PartitionKey keeps every event of one tourist on the same partition, in order
func (e *DomainEvent) PartitionKey() string {
	return e.TouristID.String()
}

func (e *DomainEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
