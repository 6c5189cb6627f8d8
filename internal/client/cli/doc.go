// Package cli provides the interactive propkeeper command-line client.
//
// It wires configuration, local storage, the REST API client and an
// interactive REPL for browsing and managing property listings. The REPL is
// the client's route guard: before every protected command the session is
// re-evaluated, and the set of offered actions is derived from the
// authorization policy for the caller's role.
//
// Key features:
//   - Login / Logout / Signup
//   - List / Show properties (policy-filtered)
//   - Add / Edit / Verify / Delete properties, gated by role and ownership
//   - User administration for admins
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
