// Package folder applies the title extraction pipeline to a folder of item
// screenshots.
//
// For every supported image directly inside the folder, in name order, the
// Processor:
//
//  1. Decodes the image (unreadable files are skipped)
//  2. Extracts title and body (files without a title are skipped)
//  3. Writes <STEM>.txt holding the title line and the body
//  4. Renames the image to <STEM><ext> with the extension lowercased
//
// STEM is the sanitized title. Both names are made unique independently by
// appending _2, _3, ... before the extension. An image whose resolved name
// is its current name is left alone.
//
// # Failures
//
// A failed write leaves the image untouched. A failed rename leaves the
// written text file in place. Either way the file is reported as failed and
// the run continues. Recognition engine errors end the run.
//
// # Concurrency
//
// With more than one worker, images are decoded and recognized in batches in
// parallel. Writes and renames are still applied one at a time in name
// order, so the chosen names do not depend on the worker count.
package folder
