// Package main provides the entry point for the password-auditor CLI.
//
// password-auditor audits password files for weak passwords. It scores
// each password, classifies it as WEAK, MEDIUM or STRONG, and reports
// the weakest entries of each file.
//
// Usage:
//
//	password-auditor audit <password-file>
//	password-auditor history <password-file>
//
// See --help for all available options.
package main

// main is the entry point for password-auditor.
func main() {
	Execute()
}
