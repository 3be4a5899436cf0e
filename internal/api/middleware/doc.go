/*
Package middleware provides the gin middleware shared by the HTTP API.

  - CORS: single credentialed browser origin (gin-contrib/cors)
  - RateLimit: per-IP token buckets (golang.org/x/time/rate)
  - RequireAuth: session cookie to user ID
  - BodyLimit: request body cap
*/
package middleware
