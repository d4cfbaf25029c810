// Package feed streams running median reports to WebSocket clients.
//
// Each connected client gets every zip report line emitted after it joined,
// as a text message. Clients that fall behind by more than their send
// buffer lose messages rather than slowing the pipeline.
package feed
