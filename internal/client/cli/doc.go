// Package cli provides the interactive PetCheck command-line client.
//
// It wires configuration, state storage, the lookup client and the session
// store, then runs a line-oriented REPL on stdin. Typical flow: pick a pet
// with "select", then check products with "scan <code>" or "photo <file>".
//
// Key features:
//   - Profile name with rename/cancel
//   - Pet roster: list, add, delete, select, unselect
//   - Barcode lookups by typed code or by image file
//   - Outcome display with a safe/unsafe verdict
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// stdin is closed. See App and runREPL for details.
package cli
