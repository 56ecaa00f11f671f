// Package store persists named concept graphs.
//
// Two backends implement the Store interface: MemoryStore for tests and
// single-process use, and MongoStore for durable storage with one
// document per graph. The engine packages never touch a store; only the
// HTTP server and CLI load and save through it.
package store
