// Package engine implements the boost lifecycle manager.
//
// The engine owns every state transition of a boost request and the
// consumption protocol downstream activity handlers (crafting, gathering,
// healing, stealing, delivery) use to query and retire grants.
//
// ARCHITECTURE:
//
// No background scheduler:
// Expiry is observed lazily at read time, never pushed by a timer. A record
// whose deadline has passed is logically expired before any writer persists
// that fact, so every operation compares stored deadlines against the clock
// before trusting stored status, and opportunistically persists the expired
// status it observes.
//
// Per-record optimistic concurrency:
// The engine takes no locks. Every mutation is a conditional status write
// through the store (UPDATE ... WHERE status = expected, plus the deadline
// predicate where the transition depends on it). The loser of a race
// observes the failed conditional write, re-reads, and either surfaces a
// domain error or degrades to a no-op - Consume and ObserveExpiry always
// degrade, because independent callers racing to finalize the same grant is
// an expected condition.
//
// Derived cache:
// The beneficiary's active-booster back-reference is a projection of the
// grant store, repaired in both drift directions by ActiveBoost. It is
// written on accept, cancel, expiry and consume, and is never read as ground
// truth by this engine.
package engine
