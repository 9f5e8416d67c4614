package models

import "time"

// EventType names a domain event published after a committed write.
type EventType string

const (
	EventProductApproved EventType = "product.approved"
	EventProductDeleted  EventType = "product.deleted"
	EventUserDeleted     EventType = "user.deleted"
	EventUserPromoted    EventType = "user.promoted"
	EventUserCrowned     EventType = "user.crowned"
)

// DomainEvent is the message body sent to the events queue.
type DomainEvent struct {
	Type       EventType `json:"type"`
	EntityID   int64     `json:"entity_id"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewDomainEvent stamps an event with the current UTC time.
func NewDomainEvent(t EventType, entityID, actorID int64) DomainEvent {
	return DomainEvent{Type: t, EntityID: entityID, ActorID: actorID, OccurredAt: time.Now().UTC()}
}
