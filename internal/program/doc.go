// Package program defines the program record model and the snapshot diff.
//
// A record's identity is its (title, provider, link) triple. Diffing two
// record collections reduces each to its set of identity keys and reports
// pure set difference: keys that appeared and keys that disappeared.
// Changes to secondary fields such as the start date do not alter a
// record's key and are therefore never reported.
package program
