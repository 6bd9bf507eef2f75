/*
Copyright 2026 The imgfs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package imgfsd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yshdb5/imgfs/pkg/httpserver"
	"github.com/yshdb5/imgfs/pkg/imgfsstore"
)

// DefaultPort is used when no port is supplied at startup, mirroring
// the reference server's compile-time default.
const DefaultPort = 8000

// Server is the single explicitly-constructed value that owns an
// imgFS container and the TCP listener serving it, replacing the
// reference implementation's file-scope globals (open container,
// listening port, mutex) with one value passed to every handler. The
// per-operation locking itself lives in *imgfsstore.File.
type Server struct {
	store *imgfsstore.File
	port  int
	http  *httpserver.Server
}

// New opens path read-write and prepares a Server that will listen on
// port (DefaultPort if port is 0). The container is not served until
// Run is called.
func New(path string, port int) (*Server, error) {
	store, err := imgfsstore.Open(path)
	if err != nil {
		return nil, err
	}
	if port == 0 {
		port = DefaultPort
	}
	hdr := store.Header()
	log.Printf("imgfs: opened %s: name=%q version=%d nb_files=%d max_files=%d",
		path, hdr.Name, hdr.Version, hdr.NbFiles, hdr.MaxFiles)

	return &Server{store: store, port: port}, nil
}

// Run binds the TCP listener and serves requests until the process
// receives SIGINT or SIGTERM, at which point it shuts down in an
// orderly fashion and returns nil.
func (s *Server) Run() error {
	srv, err := httpserver.NewServer(s.port, s.dispatch)
	if err != nil {
		return err
	}
	s.http = srv

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	fmt.Fprintf(os.Stderr, "imgFS server started on http://localhost:%d\n", s.port)

	select {
	case err := <-done:
		return err
	case <-sig:
		fmt.Fprintln(os.Stderr, "Shutting down...")
		return s.Shutdown()
	}
}

// Shutdown closes the HTTP listener and the container. It is safe to
// call more than once.
func (s *Server) Shutdown() error {
	if s.http != nil {
		s.http.Close()
		s.http = nil
	}
	if s.store != nil {
		err := s.store.Close()
		s.store = nil
		return err
	}
	return nil
}
