// Package realtime pushes task events to browsers over websockets.
//
// A Hub tracks every live connection and a room table keyed by user id.
// Connections start outside any room and join one with a joinUserRoom
// message; they leave it when they disconnect. The Hub implements
// events.Publisher so services can broadcast without knowing about
// sockets. Delivery is best effort: a connection whose send buffer is full
// misses the event and everyone else still receives it.
package realtime
