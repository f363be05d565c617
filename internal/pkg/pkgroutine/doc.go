// Package pkgroutine runs background work with a concurrency limit.
//
// Manager bounds how many goroutines run at once, recovers panics, and keeps a
// bounded list of returned errors for Wait. Pipeline runs are scheduled here.
package pkgroutine
