// Package models defines the core domain models for the expense ledger.
//
// # Ledger entries
//
// Two record kinds make up a group's financial history:
//   - Expense: one user paid an amount; Splits record who owes which share
//   - Settlement: a direct payment from one member to another
//
// Balances are never stored. They are derived from the entries on demand by
// the calculator package.
//
// # Identity
//
// Users, groups and entries are identified by numeric IDs assigned by the
// store. Entries reference users by ID only (PaidBy, PaidTo, Split.UserID);
// any view that needs names joins them on read.
//
// # Amounts
//
// Every currency amount is a decimal.Decimal. Binary floats are never used
// for money.
package models
