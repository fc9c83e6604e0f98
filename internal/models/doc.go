// Package models defines domain entities and persistence interfaces for the watchlist.
//
// Persistent entities implement [Model]:
//   - [User] : The admin account (display name, login username, bcrypt hash)
//   - [Movie] : A watchlist entry with a title and a release year
//
// [Session] is a plain record linking an opaque cookie token to a user.
//
// Length limits are enforced by Validate and checked by the service layer before anything reaches a repository.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
