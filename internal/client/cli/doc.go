// Package cli is the interactive planner client.
//
// It wires configuration, the local SQLite storage tiers and the planner
// services behind a line-oriented REPL. Typical flow: sign up or log in,
// pick or create an influencer, then work inside its workspace.
//
// Key features:
//   - Signup / Login / Logout, password change and account deletion
//   - Influencer profiles: list, create, open, remove
//   - Workspace: persona editing and visual identity lock, posts, plans,
//     brands, strategy cards, approval statuses
//   - Reel generation through the reel proxy
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
