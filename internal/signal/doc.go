// Package signal turns a distress signal transcript into packets and reduces
// them to the two puzzle answers.
//
// The transcript is a sequence of blocks separated by blank lines; every
// block holds exactly two packets, one per line. Part one sums the 1-based
// indices of blocks whose packets are already in order. Part two drops the
// block structure, inserts the divider packets and multiplies the 1-based
// positions the dividers would take in the sorted list.
package signal
