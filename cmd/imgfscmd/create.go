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

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yshdb5/imgfs/pkg/imgfserr"
	"github.com/yshdb5/imgfs/pkg/imgfsstore"
)

const (
	defaultMaxFiles = 128
	defaultThumbRes = 64
	defaultSmallRes = 256
	maxThumbRes     = 128
	maxSmallRes     = 512
)

func init() {
	RegisterCommand("create", createCmd{})
}

type createCmd struct{}

func (createCmd) Usage() {
	fmt.Fprintln(os.Stderr, "imgfscmd create <imgFS_filename> [options]")
	fmt.Fprintln(os.Stderr, "    -max_files <MAX_FILES>")
	fmt.Fprintln(os.Stderr, "    -thumb_res <X_RES> <Y_RES>")
	fmt.Fprintln(os.Stderr, "    -small_res <X_RES> <Y_RES>")
}

func (createCmd) RunCommand(args []string) error {
	if len(args) == 0 {
		return imgfserr.New(imgfserr.NotEnoughArguments)
	}

	path := args[0]
	args = args[1:]

	opts := imgfsstore.CreateOptions{
		MaxFiles: defaultMaxFiles,
		ThumbW:   defaultThumbRes,
		ThumbH:   defaultThumbRes,
		SmallW:   defaultSmallRes,
		SmallH:   defaultSmallRes,
	}

	for len(args) > 0 {
		switch args[0] {
		case "-max_files":
			if len(args) < 2 {
				return imgfserr.New(imgfserr.NotEnoughArguments)
			}
			n, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil || n == 0 {
				return imgfserr.New(imgfserr.MaxFiles)
			}
			opts.MaxFiles = uint32(n)
			args = args[2:]

		case "-thumb_res":
			if len(args) < 3 {
				return imgfserr.New(imgfserr.NotEnoughArguments)
			}
			w, h, err := parseResPair(args[1], args[2], maxThumbRes)
			if err != nil {
				return err
			}
			opts.ThumbW, opts.ThumbH = w, h
			args = args[3:]

		case "-small_res":
			if len(args) < 3 {
				return imgfserr.New(imgfserr.NotEnoughArguments)
			}
			w, h, err := parseResPair(args[1], args[2], maxSmallRes)
			if err != nil {
				return err
			}
			opts.SmallW, opts.SmallH = w, h
			args = args[3:]

		default:
			return imgfserr.New(imgfserr.InvalidArgument)
		}
	}

	store, err := imgfsstore.Create(path, opts)
	if err != nil {
		return err
	}
	return store.Close()
}

func parseResPair(xs, ys string, max uint16) (uint16, uint16, error) {
	x, errX := strconv.ParseUint(xs, 10, 16)
	y, errY := strconv.ParseUint(ys, 10, 16)
	if errX != nil || errY != nil || x == 0 || y == 0 || x > uint64(max) || y > uint64(max) {
		return 0, 0, imgfserr.New(imgfserr.Resolutions)
	}
	return uint16(x), uint16(y), nil
}
