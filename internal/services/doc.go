// Package services implements the business logic of tagpoll.
//
// Services sit between the HTTP handlers and the store. They take the
// request-scoped store from store.Lifecycle, enforce ownership, and turn
// store errors into the typed errors of pkg/errors.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── ProfileService ──► Lifecycle, Authenticator
//	    ├── QuestionService ─► Lifecycle (SuggestionEngine, VoteTabulator)
//	    ├── OptionService ───► Lifecycle
//	    ├── VoteService ─────► Lifecycle
//	    └── TagService ──────► Lifecycle
//
// # Ownership
//
// Updates and deletes check that the caller created the record and fail with
// NotOwnerError otherwise. Tagging a question is open to any authenticated
// profile; tagging a profile applies to the caller's own profile.
//
// # Error Translation
//
//	┌──────────────────────────┬──────────────────────────────────────┐
//	│ Store error              │ Service error                        │
//	├──────────────────────────┼──────────────────────────────────────┤
//	│ KindDuplicateKey         │ ResourceAlreadyExistsError           │
//	│ KindMissingReferencedRow │ ReferencedResourceNotFoundError      │
//	│ KindRowReferenced        │ ResourceStillReferencedError         │
//	│ not found lookups        │ passed through (XxxNotFoundError)    │
//	│ anything else            │ passed through                       │
//	└──────────────────────────┴──────────────────────────────────────┘
//
// # Profiles
//
// Passwords are hashed with PBKDF2 and a per-profile salt. Create and Login
// return a Session carrying a signed token. Profiles whose username is an IP
// address are never returned by GetByUsername.
//
// # Tags
//
// QuestionsWithTag pages questions QuestionsPerPage at a time, in id order.
package services
