package storage

import "io"

// Upload is an in-flight file received from a client request, decoupled from
// the transport that delivered it.
type Upload struct {
	File        io.Reader
	Size        int64
	Filename    string
	ContentType string
}
