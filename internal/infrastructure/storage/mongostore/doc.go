// Package mongostore implements the domain stores on MongoDB.
//
// Domain IDs are the hex form of the documents' ObjectIDs. A malformed ID is
// treated as a missing document.
package mongostore
