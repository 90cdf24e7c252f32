// Package output renders dotstow results for people and for scripts.
//
// Printer writes progress lines with pterm prefix printers and reports
// with the lipgloss styles from the styles subpackage. Colors are turned
// off when the destination is not a terminal or NO_COLOR is set. Status
// reports can also be written as JSON or YAML, and post-install notes are
// markdown rendered through glamour.
package output
