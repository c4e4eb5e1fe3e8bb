// Package audit orchestrates the full audit flow for password files.
//
// An audit of one file runs through three stages: reading the password
// lines, scoring every password, and aggregating the summary. Each stage
// checks for cancellation before starting, so a stuck read cannot block
// shutdown indefinitely.
//
// Design decision: We keep orchestration separate from scoring because:
// 1. The scorer stays a pure function of policy and password
// 2. File handling and cancellation concerns live in one place
// 3. Batch processing can reuse the single-file flow unchanged
//
// The package supports both individual audits and batch processing with
// concurrency control using errgroup.
package audit
