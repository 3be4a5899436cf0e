// Package presence tracks which realtime connection each user is reachable on.
//
// A Registry maps users to their current connection (last registration wins).
// A Tracker runs the per-connection lifecycle on top of it:
//
//	open ──▶ Unregistered ──register(user)──▶ Registered ──┐
//	              │                              ▲  │       │ register(user')
//	              │                              └──┘◀──────┘
//	              └──────── disconnect ──────────┴──▶ Closed
//
// Registering with an empty user is ignored. A disconnecting registered
// connection removes its user's entry, even when the same user has since
// registered on another connection.
//
// Both types are safe for concurrent use; every operation is atomic with
// respect to the others.
package presence
