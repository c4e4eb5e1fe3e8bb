// Package model defines the core data structures used throughout password-auditor.
//
// This package contains the following main types:
//   - Evaluation: The per-password scoring record
//   - Summary: Aggregate statistics over a list of evaluations
//   - AuditReport: The envelope for a single audit run
//   - Strength: The discrete WEAK/MEDIUM/STRONG classification
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scorer, report, database, audit) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
