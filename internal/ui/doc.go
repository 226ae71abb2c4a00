// Package ui renders import progress as concise console messages.
//
// ConsoleStageReporter translates importer stage transitions into human-readable
// log lines while the structured logger keeps carrying the detailed fields.
package ui
