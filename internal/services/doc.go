// Package services holds the application logic that sits between the HTTP handlers and the repositories.
//
// # Watchlist
//
// [WatchlistService] owns movie CRUD. Form values are validated here with [models.ValidateMovieInput]
// before anything reaches the store, so every persisted movie has a title and year within bounds.
//
// # Authentication
//
// [AuthService] verifies the admin's credentials with bcrypt and issues opaque session tokens
// stored in the sessions table. The admin is always the user with the lowest id.
//
// Expired sessions are pruned on every successful login. A session is rejected when:
//   - the token is unknown
//   - it has expired
//   - its user no longer exists
//
// # Error Handling
//
// Services return wrapped sentinel errors from the shared package:
//   - [shared.ErrInvalidInput] : a form value is empty or too long
//   - [shared.ErrNotFound] : the movie id does not exist
//   - [shared.ErrInvalidCredentials] : login failed, including when no admin exists
//   - [shared.ErrNotAuthenticated] : the session token does not resolve to a user
package services
