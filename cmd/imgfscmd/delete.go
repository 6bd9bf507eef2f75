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

	"github.com/yshdb5/imgfs/pkg/imgfserr"
	"github.com/yshdb5/imgfs/pkg/imgfsstore"
)

const maxImgIDLen = 127

func init() {
	RegisterCommand("delete", deleteCmd{})
}

type deleteCmd struct{}

func (deleteCmd) Usage() {
	fmt.Fprintln(os.Stderr, "imgfscmd delete <imgFS_filename> <imgID>")
}

func (deleteCmd) RunCommand(args []string) error {
	if len(args) != 2 {
		return imgfserr.New(imgfserr.NotEnoughArguments)
	}

	imgID := args[1]
	if len(imgID) == 0 || len(imgID) > maxImgIDLen {
		return imgfserr.New(imgfserr.InvalidImgID)
	}

	store, err := imgfsstore.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Delete(imgID)
}
