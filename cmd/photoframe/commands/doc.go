// Package commands defines the photoframe CLI.
//
// Commands
//
//   - frames   List the frame catalog
//   - compose  Composite a frame or photo with a name and an overlay, then save it
//   - upload   Publish a file, print its link as a QR code and copy the link
//   - qr       Render a QR code for a link
//   - print    Wrap an image in a printable HTML page or A4 landscape PDF
//
// The root command reads the same environment as the server, applies flag
// overrides and builds the shared services before any subcommand runs.
package commands
