// Package models provides the data structures shared by the spending pipeline:
// the canonical Transaction, the closed category vocabularies, raw source
// tables and keyword rule definitions.
package models
