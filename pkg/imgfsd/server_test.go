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
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/yshdb5/imgfs/pkg/imgfsstore"
)

func newTestContainer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t.imgfs")
	store, err := imgfsstore.Create(path, imgfsstore.CreateOptions{
		MaxFiles: 4, ThumbW: 64, ThumbH: 64, SmallW: 256, SmallH: 256,
	})
	if err != nil {
		t.Fatalf("imgfsstore.Create: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestNewOpensStoreOnDefaultPort(t *testing.T) {
	path := newTestContainer(t)
	s, err := New(path, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Shutdown()
	if s.port != DefaultPort {
		t.Errorf("port = %d, want %d", s.port, DefaultPort)
	}
	if s.store == nil {
		t.Error("store = nil, want opened container")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	path := newTestContainer(t)
	s, err := New(path, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestRunStopsOnExternalShutdown(t *testing.T) {
	path := newTestContainer(t)
	s, err := New(path, 0) // port 0: New substitutes DefaultPort, which Run then binds
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- s.Run() }()

	// Wait for the listener to come up before shutting it down.
	deadline := time.Now().Add(2 * time.Second)
	for s.http == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.http == nil {
		t.Fatal("Run did not bind a listener in time")
	}

	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case err := <-runErr:
		if err != nil {
			t.Errorf("Run() = %v, want nil after orderly shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestRunRejectsOccupiedPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	path := newTestContainer(t)
	s, err := New(path, port)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Shutdown()

	if err := s.Run(); err == nil {
		t.Error("Run() = nil on an already-bound port, want error")
	}
}
