// Package media stores profile, cover and post images uploaded as multipart
// form files. Content is sniffed with mimetype; only images are accepted.
package media
