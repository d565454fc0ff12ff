// Package models defines the core domain models for splitbook.
//
// # Models
//
//   - Group: a named collection of members and their shared expenses
//   - Expense: a single recorded payment with an amount, payer, and split policy
//   - User: the locally stored session record (mock login)
//
// Members are identified by display name strings, unique within a group. The
// name is the lookup key everywhere (balances, custom splits, payer), so a
// rename is a different person as far as the engine is concerned. This is
// deliberate: the persisted format has no stable member ids and must stay
// readable by older data.
//
// # Design Principles
//
//  1. Models are plain data with no behavior; all computation lives in the
//     ledger package and all mutation in the repo package.
//  2. JSON tags mirror the persisted layout exactly. There is no schema
//     version field; readers must tolerate an absent record as "no groups yet".
//  3. Avoid circular references: expenses reference their payer by name, not
//     by pointer.
package models
