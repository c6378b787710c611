// Package remote commits shader graphs to a renderer running in another
// process. Every engine call is a socket.io event named after the call
// (e.g. "set_socket_vec") whose single argument is a JSON object, and whose
// acknowledgement carries the result:
//
//	{"ok": true, "id": 3}
//	{"ok": false, "error": "unknown socket 'Colour'"}
//
// Calls are sequential: each waits for its acknowledgement before returning.
package remote
