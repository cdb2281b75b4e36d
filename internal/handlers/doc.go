// Package handlers implements the HTTP API layer for tagpoll.
//
// Handlers decode and validate requests, authenticate the caller, delegate to
// the services layer and map results and errors to HTTP responses.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│              v1.RegisterHandlersWithOptions (api/v1)            │
//	│  - Path and query parameter binding                             │
//	│  - Negative id rejection                                        │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Body validation (gin binding + custom validators)            │
//	│  - Bearer token authentication                                  │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Profile │ Question │ Option │ Vote │ Tag                       │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Handler Structure
//
// All handlers are methods on a single Handler struct implementing
// v1.ServerInterface. Register installs the validators and every route:
//
//	h := handlers.New(handlers.Services{...}, authenticator, cfg.IsProduction())
//	err := h.Register(router)
//
// # Request Order
//
// Bodies are validated before the caller is authenticated, so a malformed
// body is reported as 400 even without a token. Listing endpoints that expose
// every record (GET /profile, /question, /option, /vote) answer 403 in
// production mode.
//
// # Error Handling
//
// Errors use one response shape:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                      │ Status │ When                         │
//	├─────────────────────────────────┼────────┼──────────────────────────────┤
//	│ InvalidParametersError          │ 400    │ Bad body, path or query      │
//	│ InvalidAuthorizationError       │ 400    │ Malformed or expired token   │
//	│ ResourceAlreadyExistsError      │ 400    │ Unique constraint            │
//	│ MissingAuthenticationError      │ 403    │ No Authorization header      │
//	│ NotOwnerError                   │ 403    │ Changing another's record    │
//	│ IncorrectPasswordError          │ 403    │ Login with a wrong password  │
//	│ NotAvailableInProductionError   │ 403    │ Dev only listing in prod     │
//	│ ResourceNotFoundError           │ 404    │ Record doesn't exist         │
//	│ ReferencedResourceNotFoundError │ 404    │ Dangling reference in a body │
//	│ ResourceStillReferencedError    │ 409    │ Row referenced by another    │
//	│ CouldNotConnect (store)         │ 503    │ Database unreachable         │
//	│ anything else                   │ 500    │ Unexpected failures          │
//	└─────────────────────────────────┴────────┴──────────────────────────────┘
//
// 5xx responses are logged. In production their message is generic; in
// development it carries the error text.
//
// # Model Conversion
//
// Handlers convert internal models to API types with the functions in
// api/v1/extension.go. Profiles never expose the password hash or salt.
package handlers
