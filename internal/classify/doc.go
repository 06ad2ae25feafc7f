// Package classify maps declared Go value types onto the fixed set of storage
// codec categories understood by generated mappers.
package classify
