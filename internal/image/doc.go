// Package imagepkg loads, composites and encodes images: the certificate
// compositor, its fractional layout math, font faces and the QR renderer.
package imagepkg
