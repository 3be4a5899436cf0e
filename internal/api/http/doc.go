/*
Package http implements the REST API.

Routes are mounted under /api in five groups:

	/auth          signup, login, logout
	/user          profile, search, suggestions
	/post          feed, likes, comments
	/connection    connection requests and status
	/notification  list and delete notifications

Every group except /auth requires the session cookie. Errors are returned as
{"success": false, "error": "..."} with a status derived from the domain error.
*/
package http
