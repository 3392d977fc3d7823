// Package boost defines the domain model for the boost grant lifecycle.
//
// A boost is a time-boxed assistance grant: one actor (the booster) offers a
// temporary gameplay modifier to another actor (the beneficiary). The grant
// moves through a small state machine:
//
//	pending  → accepted | cancelled | expired
//	accepted → fulfilled | cancelled | expired
//
// fulfilled, expired and cancelled are terminal.
//
// CRITICAL PATTERN — computed expiry outranks stored status:
// A pending or accepted record whose deadline has passed is logically expired
// even before any writer persists status=expired. Every reader MUST check the
// deadline against the current time before trusting the stored status. The
// Live/PendingLive/AcceptedLive predicates on Request encode this rule; new
// consumers must go through them rather than comparing Status directly.
//
// This package is pure data and rules: no I/O, no clock, no store. The engine
// package owns transitions; the store package owns persistence.
package boost
