// Package utils provides parsing helpers shared by the feed mapper and the
// reconciliation engine: text cleanup, price parsing and quantity parsing.
package utils
