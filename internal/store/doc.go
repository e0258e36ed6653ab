// Package store holds the single editor state behind a replay-latest
// subscription and owns the undo/redo history.
//
// Every mutation path, setState updaters and executed commands alike,
// funnels through one invariant-repair step before publishing. Repair is
// copy-on-write: a state that already satisfies the invariants is
// republished as the same reference, so subscribers can detect "no real
// change" with a pointer comparison.
//
// Subscribe delivers the current state synchronously before returning;
// the returned unsubscribe function is idempotent. The store serializes
// all access with a mutex, but listeners are invoked outside the lock.
package store
