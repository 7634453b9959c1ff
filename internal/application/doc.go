// Package application provides application initialization and dependency wiring.
// It builds the conversion history, the optional Redis cache, handlers,
// routers and the HTTP server, keeping the main package focused on CLI
// parsing and orchestration.
package application
