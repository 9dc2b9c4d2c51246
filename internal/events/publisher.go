package events

import "context"

// Publisher pushes events to connected clients. Delivery is best effort:
// implementations never return delivery errors, and emitting to a room with
// no members is a no-op.
type Publisher interface {
	// BroadcastGlobal delivers the event to every connected client.
	BroadcastGlobal(ctx context.Context, event string, payload any)

	// EmitToRoom delivers the event to connections joined to the user's room.
	EmitToRoom(ctx context.Context, userID string, event string, payload any)
}
