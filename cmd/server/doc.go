// Command server runs the photo frame HTTP API.
//
// Configuration comes from the environment: PORT, PHOTOFRAME_DATA, FONT_PATH,
// LOG_LEVEL, SESSION_TTL and the CLOUDINARY_* upload settings.
package main
