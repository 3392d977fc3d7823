// Package store provides SQLite-backed durable storage for boost grants and
// actor references.
//
// The store plays the role of the external TTL-capable record store the
// lifecycle engine depends on:
//
//   - Grants: one row per boost request, keyed by id
//   - Actors: job/location reference data plus the cached active-booster
//     back-reference the engine reconciles
//
// # Write discipline
//
// Inserts use ON CONFLICT(id) DO NOTHING so redundant writes are idempotent.
// Status mutations go through UpdateGrant, a conditional write: the UPDATE
// carries the expected current status (and, when the caller asks for it, the
// relevant expiry deadline) in its WHERE clause, and RowsAffected decides
// whether the caller won the race. There are no blind status overwrites.
//
// # TTL reclamation
//
// Every grant row carries purge_after; PurgeExpired deletes rows long past
// it. This is a safety net for storage hygiene only - lifecycle correctness
// always comes from deadline comparisons at read time, never from deletion.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Opaque record fields (effect snapshot, context, presentation refs) are
// serialized as canonical JSON (sorted keys, NFC-normalized strings, no HTML
// escaping) so stored bytes are stable across writers.
package store
