// Package models defines the domain models for household expense tracking.
//
// # Models
//
//   - Household: a group of users who share expenses
//   - Member: one user's enrollment in a household
//   - Expense: a single spending event with one payer
//   - ExpenseShare: the portion of an expense owed by one user
//   - User: profile data used to resolve display names
//
// Derived (never persisted) models:
//   - MemberBalance: per-user paid/owed/net totals for a household
//   - MonthlyTotal: total spent per calendar month
//   - Transfer: one suggested payment in a settle-up plan
//
// # Design Principles
//
//  1. Money is decimal.Decimal, never float64
//  2. Relationships are ID strings, not pointers
//  3. User IDs are opaque strings issued by the identity provider
package models
