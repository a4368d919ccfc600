// Package detection picks the item title out of recognized banner text.
//
// The banner of an item screenshot holds the title plus decorative border
// art that the recognition engine partly reads as text. Selection works on
// the engine's word tokens:
//
//  1. Drop tokens with blank text
//  2. Group tokens by the engine's (block, paragraph, line) key, keeping the
//     order in which keys first appear
//  3. Join each group left to right, uppercased, single-spaced
//  4. Reject lines with fewer than MinTitleLetters A-Z letters
//  5. Score the rest (see ScoreLine) and keep the highest, first seen on ties
//
// CleanLine handles the fallback path, where the banner was read as one raw
// line of text instead of tokens.
//
// # Coordinate System
//
// Token positions and the banner height passed to the scorer are both in
// the pixel space of the conditioned banner image handed to the engine.
package detection
