// Package report renders import summaries as a table, JSON, or YAML.
package report
