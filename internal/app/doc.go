// Package app wires application dependencies for the server and the CLI.
//
// It reads Config from the environment, then builds the logger, blob store,
// image loader, compositor, QR renderer, upload client, frame catalog and
// flow store, exposing them via the Wire struct.
package app
