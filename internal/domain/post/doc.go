// Package post implements the feed: publishing, likes and comments. Likes and
// comments on another member's post raise notifications and are pushed to the
// author's realtime connection.
package post
