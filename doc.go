// Package equity tracks employee equity compensation and the taxes it
// triggers.
//
// The core functionalities include:
//   - Vesting: turning a grant schedule, with its cliff, into dated lots of
//     options (see Schedule and Ledger.GrantSchedule).
//   - Lot lifecycle: moving units from options to stock to sale, splitting
//     lots when only part of them is exercised or sold (see Ledger.Evolve).
//   - Taxes: progressive brackets applied to ordinary income, capital gains
//     and the alternative minimum tax (see Calculator).
//   - Persistence: recording every operation as a JSONL command log that can
//     be replayed into a Ledger.
//
// Tax tables are not part of this package, they are looked up through a
// TaxTableProvider. See package taxee for an implementation.
//
// This package serves as the foundational logic for the `eqt` command-line
// tool.
package equity
