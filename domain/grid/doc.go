// Package grid models the 13x13 matrix of the 169 canonical two-card
// starting hands and the push/fold ranges drawn on it.
//
// # Addressing
//
// Ranks are indexed from the ace (0) down to the deuce (12). The cell at
// (row, col) is a pair when row == col, a suited hand when row < col and an
// offsuit hand when row > col. Labels always print the higher rank first:
// (0, 1) is "AKs" and (1, 0) is "AKo".
//
// # Range notation
//
// ParseRange reads comma separated tokens:
//   - "TT" a single pair, "TT+" that pair and every higher one
//   - "AK" both AKs and AKo, "AKs" or "AKo" only one of them
//   - "AJ+" with an ace, king or queen on top raises the kicker: AJ, AQ, AK
//   - "98s+" with a lower top card raises both ranks: 98s, T9s, ..., AKs
//
// Anything else is skipped.
package grid
