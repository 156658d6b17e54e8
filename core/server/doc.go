// Package server holds the HTTP server configuration and constants.
//
// While the serve command handles the server startup, this package defines
// the configuration structures and derived values for server settings, such
// as the upload size limit.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, the maximum accepted
// upload size, and the library file matched against by the upload endpoint.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the serve command to configure Fiber.
package server
