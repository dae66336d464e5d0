// Package models defines the core domain models for the team settlement engine.
//
// # Persisted models
//
//   - Expense: a shared payment one member made on behalf of another
//   - Subscription: a recurring service paid by one member, used by another
//   - Settlement: a money-transfer obligation between two members
//   - MonthlySettlementStatus: per-member, per-month settled/pending flag
//
// # Derived models
//
// The following are recomputed on every balance query and never stored:
//   - ImbalanceRecord: normalized "X paid for Y" fact from either source
//   - PersonBalance: one member's net creditor/debtor position
//   - SettlementSuggestion: a proposed transfer that would clear a debt
//
// # Design principles
//
// 1. Members are identified by name strings; there are no user accounts here
// 2. Use ID strings instead of pointers for relationships
// 3. Derived models carry everything a reporting caller needs, so callers
//    never reach back into the matrix
package models
