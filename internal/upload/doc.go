// Package upload publishes raw image files to Cloudinary's unsigned upload
// API and returns their public URL.
//
// Requests are multipart/form-data POSTs carrying the file together with the
// configured upload preset and destination folder. A non-2xx response yields
// an *Error whose message is the server-supplied error.message when present,
// otherwise a generic "Upload failed". The client never retries; callers
// expose retry as an explicit user action.
package upload
