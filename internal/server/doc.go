// Package server provides HTTP routing, middleware, and the playlist service endpoints.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [MuxRouter] implementation wraps [github.com/gorilla/mux] for path variables and method matching.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Endpoints
//
// [Mount] registers the service surface:
//
//	GET  /search/{provider}/{page}/{query}  typed search results, [] on any failure
//	GET  /playlists/{id}                    resolved playlist contents by saved id
//	POST /playlists/save                    persist playlist contents, returns the shareable id
//	GET  /status                            service health and playlist count
//
// The search and playlist endpoints never surface provider failures as HTTP errors:
// an unreachable provider yields an empty result set with status 200, matching
// what a player in front of this service can actually act on.
package server
