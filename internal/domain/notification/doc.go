// Package notification stores per-user notifications and pushes each new one
// to the receiver's realtime connection when they are online.
package notification
