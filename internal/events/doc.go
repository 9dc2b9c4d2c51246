// Package events defines the realtime event vocabulary shared by the task
// services and the realtime hub.
//
// The primary components are:
//   - event names (task:created, task:assigned, newNotification, ...)
//   - Envelope: the {"event","data"} frame exchanged over a socket
//   - payload types for events that do not carry a whole domain entity
//   - Publisher: the push contract services depend on instead of the hub
package events
