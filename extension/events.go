// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events let
// extensions react to catalog changes without modifying core logic.
//
// Design: events are fire-and-forget notifications, not approval requests.
// Extensions observe after the fact and cannot veto a change.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventProductCreate EventType = "product:create"
	EventProductUpdate EventType = "product:update"
	EventProductDelete EventType = "product:delete"
	EventCatalogImport EventType = "catalog:import"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	// EventProduct returns the affected product id, or 0 for bulk events.
	EventProduct() int64
}

// ProductEvent is fired after a product is created, updated or deleted.
type ProductEvent struct {
	Type   EventType
	ID     int64
	Name   string
	Author string
}

func (e ProductEvent) EventType() EventType { return e.Type }
func (e ProductEvent) EventProduct() int64  { return e.ID }

// ImportEvent is fired after a bulk import commits.
type ImportEvent struct {
	Count  int
	Author string
}

func (e ImportEvent) EventType() EventType { return EventCatalogImport }
func (e ImportEvent) EventProduct() int64  { return 0 }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
