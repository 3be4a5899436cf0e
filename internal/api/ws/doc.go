// Package ws provides the realtime presence endpoint.
//
// Clients connect over WebSocket on the same listener as the REST API and
// exchange JSON frames of the form {"event": "...", "data": ...}.
//
// Message Types (Client → Server):
//   - register: data is the user ID (string or number) to bind this connection to
//
// Transport Events:
//   - disconnect: raised when the socket closes or fails; releases the user's presence
//
// Message Types (Server → Client), sent through Hub.Emit:
//   - newNotification, likeUpdated, commentAdded, statusUpdate
//
// Keepalive pings are sent every PingInterval; a peer that misses two
// intervals is disconnected by the transport.
//
// Example Usage:
//
//	tracker := presence.NewTracker(presence.NewRegistry(), logger)
//	hub := ws.NewHub(tracker, ws.DefaultConfig(), logger)
//	router.GET("/ws", hub.HandleConnection)
//	hub.Emit(userID, "newNotification", n)
package ws
