// Package api exposes the photo frame workflow over HTTP with gin.
//
// A client creates a flow session, picks a frame or uploads a photo as the
// base, enters a name, uploads an overlay and then fetches, saves, prints or
// publishes the composite. Every error is answered as {"error": "..."}.
package api
