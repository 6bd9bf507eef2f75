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

	"github.com/yshdb5/imgfs/pkg/container"
	"github.com/yshdb5/imgfs/pkg/imgfserr"
	"github.com/yshdb5/imgfs/pkg/imgfsstore"
)

func init() {
	RegisterCommand("read", readCmd{})
}

type readCmd struct{}

func (readCmd) Usage() {
	fmt.Fprintln(os.Stderr, "imgfscmd read <imgFS_filename> <imgID> [original|orig|thumbnail|thumb|small]")
}

func (readCmd) RunCommand(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return imgfserr.New(imgfserr.NotEnoughArguments)
	}

	imgID := args[1]
	res := container.OrigRes
	if len(args) == 3 {
		r, ok := container.ParseResolution(args[2])
		if !ok {
			return imgfserr.New(imgfserr.Resolutions)
		}
		res = r
	}

	store, err := imgfsstore.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := store.Read(imgID, res)
	if err != nil {
		return err
	}

	outName := imgID + res.Suffix() + ".jpg"
	if err := os.WriteFile(outName, data, 0o644); err != nil {
		return imgfserr.Wrap(imgfserr.IO, err)
	}
	return nil
}
