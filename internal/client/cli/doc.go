// Package cli provides the interactive sedaily command-line client.
//
// It wires configuration, the metadata store, the podcast disk cache, the
// event bus and the session store, then runs a REPL over stdin. On start the
// persisted session of a previous run is restored.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
