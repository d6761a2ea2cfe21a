// Package cli provides the interactive Phoenix command-line client.
//
// It wires configuration, the persisted token store, the token lifecycle
// manager, the API client, and an interactive REPL. A session restored from
// the token file survives restarts; a forced logout (failed refresh,
// persistent 401) resets the prompt to the signed-out state.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
