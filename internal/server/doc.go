// Package server provides HTTP routing, middleware, and the server lifecycle for the web interface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [ChiRouter] implements it on top of chi, which supplies path parameters ([URLParam]),
// route groups, and separate not-found and method-not-allowed handlers.
//
// # Middleware
//
// Middleware is applied in the order it is added. The web app installs this stack:
//   - [RequestID] : X-Request-ID propagation, readable with [GetRequestID]
//   - [Logger] : one access log line per request with status and duration
//   - [Recovery] : converts panics into a 500 page
//   - [RateLimit] : per-IP limits through httprate
//   - [RequestSizeLimit] : caps request bodies
//   - [CSRF] : Origin/Referer check for state-changing requests
//
// Middleware that rejects a request calls an [ErrorRenderer], so error pages stay in the web package.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, registering their own routes on a [Router]
// to encapsulate route definitions within the implementation.
//
// # Lifecycle
//
// [Server.Serve] runs until its context is cancelled and then shuts down gracefully,
// waiting for in-flight requests.
package server
