package event_bus

// Mutation events published by the domain services after a successful write.
const (
	EventCreated  EventType = "event.created"
	EventReplaced EventType = "event.replaced"
	EventDeleted  EventType = "event.deleted"

	ActivityCreated  EventType = "activity.created"
	ActivityReplaced EventType = "activity.replaced"
	ActivityDeleted  EventType = "activity.deleted"
)

// EntityChange is the payload carried by all mutation events.
type EntityChange struct {
	Entity    string
	Id        int
	Subject   string
	RequestId string
}
