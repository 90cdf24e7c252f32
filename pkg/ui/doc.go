// Package ui holds output format selection. Subpackages render reports
// (output) and ask the user questions (confirmations).
package ui
