// Package websocket streams tree change events to connected clients.
package websocket
