// Package user implements accounts and profiles: signup, login, profile
// edits, search, suggestions and the symmetric connection list.
package user
