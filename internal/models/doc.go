// Package models defines the core domain models for Platelog.
//
// # Models
//
//   - FoodEntry: one logged meal or snack with its nutrition estimate
//   - MealType: the closed set of meal tags an entry can carry
//   - User: a registered account; every entry belongs to one user
//   - Preferences: per-user display settings such as the theme
//
// Nutrition values themselves live in the nutrition package so the
// arithmetic can be used without pulling in the rest of the model.
//
// # Design Principles
//
// 1. **Entries are immutable**: there is no update, only create and delete
// 2. **Derived data is never stored**: daily totals are recomputed from entries
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
package models
