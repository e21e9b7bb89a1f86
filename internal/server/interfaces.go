package server

// Server is the lifecycle contract of the vault sync server.
//
// Implementations block in [Server.RunServer] until a stop signal arrives and
// release the listener and in-flight requests in [Server.Shutdown].
type Server interface {
	// RunServer starts serving sync requests and blocks until the server
	// stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
