// Package handlers implements the HTTP endpoints of the nail test server.
//
// Handlers parse request parameters, delegate to the services layer and map service
// errors to HTTP status codes. Every response body is plain text except subpages, which
// are random bytes.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Query and path parameter parsing                             │
//	│  - Error mapping to HTTP status codes                           │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Subpages │ Sleeper                                             │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Endpoints
//
//	┌────────┬────────────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint       │ Description                                 │
//	├────────┼────────────────┼─────────────────────────────────────────────┤
//	│ GET    │ /hello         │ "Hello, world!\n"                           │
//	│ GET    │ /sleep         │ Sleep a random time, then "Slept for <d>\n" │
//	│ GET    │ /subpages      │ One "/subpages/<key>" line per page         │
//	│ GET    │ /subpages/:key │ 1024 random bytes, or 404 "404\n"           │
//	│ GET    │ /status/:code  │ Answer with the given status code           │
//	└────────┴────────────────┴─────────────────────────────────────────────┘
//
// /metrics is mounted by the server package, not here.
//
// # Sleep Handler
//
// Query Parameters:
//
//	┌───────────┬────────┬──────────────────────────────────────────────┐
//	│ Parameter │ Type   │ Description                                  │
//	├───────────┼────────┼──────────────────────────────────────────────┤
//	│ min       │ uint64 │ Lower bound in ms (default: 500)             │
//	│ max       │ uint64 │ Upper bound in ms (default: 2*min)           │
//	└───────────┴────────┴──────────────────────────────────────────────┘
//
// Both bounds are inclusive. Errors (400 Bad Request):
//   - min or max is not an unsigned integer
//   - max is given and is not greater than min
//
// Example: /sleep?min=100&max=250 → "Slept for 173ms\n"
//
// # Status Handler
//
// /status/:code accepts codes from 200 to 599 and answers with "<code> <text>\n". It is
// used to make hammer runs fail on purpose.
package handlers
