// Package runstore persists decode run history in a SQLite database.
//
// Each decode of an MCC file is recorded as a run: created when the decode
// starts and finalized with counts and status when it completes or fails.
// The store owns schema creation and version checks for its database file.
package runstore
