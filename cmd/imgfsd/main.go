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

// The imgfsd binary serves an imgFS container over HTTP:
//
//	imgfsd <container_file> [<port>]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yshdb5/imgfs/pkg/imgfserr"
	"github.com/yshdb5/imgfs/pkg/imgfsd"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: imgfsd <container_file> [<port>]")
		os.Exit(int(imgfserr.NotEnoughArguments))
	}

	port := 0
	if len(os.Args) > 2 {
		p, err := strconv.Atoi(os.Args[2])
		if err != nil || p < 0 {
			port = imgfsd.DefaultPort
		} else {
			port = p
		}
	}

	srv, err := imgfsd.New(os.Args[1], port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(int(imgfserr.KindOf(err)))
	}

	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(int(imgfserr.KindOf(err)))
	}
}
