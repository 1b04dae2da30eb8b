// Package repositories implements SQLite persistence for locally kept data.
//
// The board server owns the catalog and the pending queue; what lives here is
// the offline snapshot written by `catalog sync` and the audit trail of
// moderation decisions taken from this machine. Both repositories support
// soft deletes via deleted_at timestamps and exclude deleted records from
// queries by default.
//
// Key Implementations:
//   - [MusicRepository] : Catalog snapshot persistence with remote-id lookups
//   - [DecisionRepository] : Moderation decision audit trail
//
// Sequence numbers provide stable, human-readable ordering independent of
// UUIDs and creation timestamps. The [NextSequence] function atomically
// increments per-table sequence counters in dedicated sequence tables.
package repositories
