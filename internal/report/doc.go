// Package report renders sync and status reports for the terminal (colored
// text) and for scripts (JSON or YAML).
package report
