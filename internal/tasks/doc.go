// Package tasks implements the administrative operations behind the CLI with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] type exposes two operations:
//
//  1. [Engine.Forge] : Reset the database to the fixture state
//     - Applies pending migrations
//     - Clears sessions, movies and users in one transaction
//     - Inserts the admin and the ten fixture movies
//
//  2. [Engine.Export] : Write the watchlist in one of the [formatter.Format] encodings
//     - Reads the admin's display name for the document title
//     - Writes to a file or to any [io.Writer]
//
// # Progress Reporting
//
// Operations accept an optional send-only [ProgressUpdate] channel. Sends never block:
// a full or nil channel drops the update, so callers that do not care pass nil.
package tasks
