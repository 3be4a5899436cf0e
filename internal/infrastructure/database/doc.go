// Package database owns the MongoDB connection.
//
// Connect is called once during bootstrap; a failed connect or ping is
// returned to the caller, which aborts startup before the HTTP listener opens.
package database
