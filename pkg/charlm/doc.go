/*
Package charlm provides an in-memory, character-level n-gram language model.

A Model slides a fixed-width window of runes across a training corpus and
records, for every window, which runes followed it and how often. Once
trained, the model extends a seed text one rune at a time by looking up the
trailing window and drawing the next rune weighted by its observed frequency.

Models are seeded (reproducible output for a fixed seed) or unseeded (fresh
entropy per model) at construction time, and are not safe for concurrent use.
*/
package charlm
