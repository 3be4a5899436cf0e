// Package memory provides in-process implementations of the domain stores.
//
// They back DB_DRIVER=memory and the HTTP tests. Every store copies values
// on the way in and out so callers never share state with the store.
package memory
