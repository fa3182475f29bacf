/*
Package server implements msgpack IPC for spell check services.

The server provides a minimal interface for editors and language tooling
to spell check buffers using msgpack serialization over stdin/stdout.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout.
Each message carries an ID the client uses to correlate the response.

Check requests name a file and optionally carry its buffer contents:

	{"id": "req_001", "p": "src/app.js", "c": "let HTTPSeverName = ..."}

When the content field is absent the server reads the file from disk.
The server responds with diagnostics and timing info:

	{"id": "req_001", "d": [{"w": "sever", "l": 1, "c": 9, ...}], "n": 1, "t": 145}

Errors are reported with an ID, message and status code:

	{"id": "req_001", "e": "missing 'p' field", "c": 400}

msgpack encoding keeps message sizes small and parsing cheap, which
matters when editors re-check buffers on every save.
*/
package server

import "github.com/srcspell/srcspell/pkg/checker"

// CheckRequest asks the server to spell check one file.
type CheckRequest struct {
	ID      string `msgpack:"id"`
	Path    string `msgpack:"p"`
	Content []byte `msgpack:"c,omitempty"`
}

// CheckResponse carries the diagnostics for one request.
type CheckResponse struct {
	ID          string               `msgpack:"id"`
	Diagnostics []checker.Diagnostic `msgpack:"d"`
	Count       int                  `msgpack:"n"`
	TimeTaken   int64                `msgpack:"t"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// StatusResponse signals server lifecycle events such as readiness.
type StatusResponse struct {
	Status string `msgpack:"status"`
}
