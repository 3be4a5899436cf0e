// Package auth provides password hashing (bcrypt) and session tokens
// (HS256 JWTs) for the auth routes and middleware.
package auth
