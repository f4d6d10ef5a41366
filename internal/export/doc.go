// Package export delivers finished artifacts to the user: saving through a
// chain of fallback targets, print documents, and copying share links.
//
// Every action treats a missing artifact as ErrNoArtifact and reports
// failures as *ExportError after logging them; nothing here panics or leaves
// an error for the caller to forget.
package export
