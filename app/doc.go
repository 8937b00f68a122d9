// Package app wires the range engine to a store for the two user flows.
//
// # Editor
//
// Open a Draft for a context, change it with Toggle, Clear or Import, then
// Save it. A Draft is a value: the store only sees it once saved.
//
// # Trainer
//
// Next deals a scenario from the enabled filters, Answer judges it and
// records the result, Stats summarizes the recorded results.
package app
