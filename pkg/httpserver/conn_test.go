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

package httpserver

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"
)

func startTestServer(t *testing.T, handler Handler) *Server {
	t.Helper()
	srv, err := NewServer(0, handler)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	go srv.Serve()
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestServeRoundTrip(t *testing.T) {
	srv := startTestServer(t, func(msg *Message, conn net.Conn) error {
		if msg.Method != "GET" || msg.URI != "/imgfs/list" {
			t.Errorf("handler saw Method=%q URI=%q", msg.Method, msg.URI)
		}
		return Reply(conn, "200 OK", []Header{{Key: "Content-Type", Value: "application/json"}}, []byte(`{"Images":[]}`))
	})

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("GET /imgfs/list HTTP/1.1\r\nHost: x\r\n\r\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !strings.HasPrefix(string(resp), "HTTP/1.1 200 OK") {
		t.Fatalf("response = %q, want prefix HTTP/1.1 200 OK", resp)
	}
	if !strings.Contains(string(resp), `{"Images":[]}`) {
		t.Errorf("response body missing expected JSON: %q", resp)
	}
}

func TestServeWithBody(t *testing.T) {
	var gotBody string
	srv := startTestServer(t, func(msg *Message, conn net.Conn) error {
		gotBody = string(msg.Body)
		return Reply(conn, "302 Found", []Header{{Key: "Location", Value: "/index.html"}}, nil)
	})

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	body := "raw-jpeg-bytes-go-here"
	req := "POST /imgfs/insert?name=pic1 HTTP/1.1\r\nContent-Length: " +
		strconv.Itoa(len(body)) + "\r\n\r\n" + body
	if _, err := conn.Write([]byte(req)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r := bufio.NewReader(conn)
	statusLine, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if !strings.HasPrefix(statusLine, "HTTP/1.1 302 Found") {
		t.Fatalf("status line = %q, want 302 Found", statusLine)
	}
	if gotBody != body {
		t.Errorf("handler saw body %q, want %q", gotBody, body)
	}
}
