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

// Package imgfsd is the bridge between the HTTP transport in
// pkg/httpserver and the store operations in pkg/imgfsstore: routing,
// request/response translation, and process lifecycle.
package imgfsd

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/yshdb5/imgfs/pkg/container"
	"github.com/yshdb5/imgfs/pkg/httpserver"
	"github.com/yshdb5/imgfs/pkg/imgfserr"
)

const uriRoot = "/imgfs"

// requestKind tags a parsed request the way REDESIGN flags for this
// dispatcher ask: a closed variant matched exhaustively, rather than a
// chain of if/else URI prefix checks with an implicit default.
type requestKind int

const (
	kindLandingPage requestKind = iota
	kindList
	kindRead
	kindDelete
	kindInsert
	kindUnknown
)

// request is the tagged-variant request the dispatcher builds out of a
// raw *httpserver.Message before acting on it.
type request struct {
	kind       requestKind
	imgID      string
	resolution container.Resolution
	name       string
	body       []byte
}

// classify turns a parsed HTTP message into a request variant. "/" and
// "/index.html" are kindLandingPage only for GET; any other verb on
// those paths classifies as kindUnknown.
func classify(msg *httpserver.Message) request {
	path, query := httpserver.SplitURI(msg.URI)

	if httpserver.MatchVerb(msg.Method, "GET") && (path == "/" || path == "/index.html") {
		return request{kind: kindLandingPage}
	}

	switch {
	case httpserver.MatchURI(msg, uriRoot+"/list") && httpserver.MatchVerb(msg.Method, "GET"):
		return request{kind: kindList}

	case httpserver.MatchURI(msg, uriRoot+"/read") && httpserver.MatchVerb(msg.Method, "GET"):
		resStr, _ := httpserver.GetVar(query, "res")
		imgID, _ := httpserver.GetVar(query, "img_id")
		res, ok := container.ParseResolution(resStr)
		if !ok {
			return request{kind: kindUnknown}
		}
		return request{kind: kindRead, imgID: imgID, resolution: res}

	case httpserver.MatchURI(msg, uriRoot+"/delete") && httpserver.MatchVerb(msg.Method, "GET"):
		imgID, _ := httpserver.GetVar(query, "img_id")
		return request{kind: kindDelete, imgID: imgID}

	case httpserver.MatchURI(msg, uriRoot+"/insert") && httpserver.MatchVerb(msg.Method, "POST"):
		name, _ := httpserver.GetVar(query, "name")
		return request{kind: kindInsert, name: name, body: msg.Body}

	default:
		return request{kind: kindUnknown}
	}
}

// listImages is the JSON body shape for GET /imgfs/list.
type listImages struct {
	Images []string `json:"Images"`
}

// dispatch routes msg to a store operation and writes the HTTP
// response, returning the result of whichever handler ran (fixing the
// reference implementation's missing return on its matched branches:
// the dispatcher here always returns its handler's outcome, never
// falls through silently).
func (s *Server) dispatch(msg *httpserver.Message, conn net.Conn) error {
	req := classify(msg)

	switch req.kind {
	case kindLandingPage:
		return httpserver.Reply(conn, "200 OK", []httpserver.Header{
			{Key: "Content-Type", Value: "text/html; charset=utf-8"},
		}, []byte(landingPageHTML))

	case kindList:
		return s.handleList(conn)

	case kindRead:
		return s.handleRead(conn, req)

	case kindDelete:
		return s.handleDelete(conn, req)

	case kindInsert:
		return s.handleInsert(conn, req)

	default:
		return replyError(conn, imgfserr.New(imgfserr.InvalidCommand))
	}
}

func (s *Server) handleList(conn net.Conn) error {
	ids := s.store.ListIDs()
	body, err := json.Marshal(listImages{Images: ids})
	if err != nil {
		return replyError(conn, imgfserr.Wrap(imgfserr.Runtime, err))
	}
	return httpserver.Reply(conn, "200 OK", []httpserver.Header{
		{Key: "Content-Type", Value: "application/json"},
	}, body)
}

func (s *Server) handleRead(conn net.Conn, req request) error {
	if req.imgID == "" {
		return replyError(conn, imgfserr.New(imgfserr.InvalidArgument))
	}
	data, err := s.store.Read(req.imgID, req.resolution)
	if err != nil {
		return replyError(conn, err)
	}
	return httpserver.Reply(conn, "200 OK", []httpserver.Header{
		{Key: "Content-Type", Value: "image/jpeg"},
	}, data)
}

func (s *Server) handleDelete(conn net.Conn, req request) error {
	if req.imgID == "" {
		return replyError(conn, imgfserr.New(imgfserr.InvalidArgument))
	}
	if err := s.store.Delete(req.imgID); err != nil {
		return replyError(conn, err)
	}
	return s.reply302(conn, "/index.html")
}

func (s *Server) handleInsert(conn net.Conn, req request) error {
	if req.name == "" {
		return replyError(conn, imgfserr.New(imgfserr.InvalidArgument))
	}
	if len(req.body) == 0 {
		return replyError(conn, imgfserr.New(imgfserr.InvalidArgument))
	}
	if err := s.store.Insert(req.name, req.body); err != nil {
		return replyError(conn, err)
	}
	return s.reply302(conn, "/index.html")
}

func (s *Server) reply302(conn net.Conn, location string) error {
	return httpserver.Reply(conn, "302 Found", []httpserver.Header{
		{Key: "Location", Value: fmt.Sprintf("http://localhost:%d%s", s.port, location)},
	}, nil)
}

// replyError translates a store error into the 500 response spec.md §7
// mandates: "Error: <message>\n".
func replyError(conn net.Conn, err error) error {
	msg := fmt.Sprintf("Error: %s\n", imgfserr.KindOf(err).String())
	return httpserver.Reply(conn, "500 Internal Server Error", nil, []byte(msg))
}
