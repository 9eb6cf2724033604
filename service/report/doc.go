// Package report renders, stores and compares simulation results.
package report
