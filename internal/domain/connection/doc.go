// Package connection manages connection requests between members.
//
// A request starts pending and is accepted or rejected by its receiver.
// Accepting links both users and notifies the sender. Each change is pushed
// to the members as a statusUpdate realtime event.
package connection
