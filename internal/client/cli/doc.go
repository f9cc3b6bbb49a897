// Package cli provides the interactive Vacay command-line client.
//
// It wires configuration, the local session store, the HTTP API client, and
// an interactive REPL for working with shared photo albums. Typical flow:
// log in (or reuse a persisted session), open an album, upload files, and
// save the album's media to the local device.
//
// Key features:
//   - Register / Login / Logout with persisted token sessions
//   - Create, list, and open albums; manage members and share links
//   - Upload batches of photos and videos with per-file progress
//   - Save every item of an album to the export directory
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
