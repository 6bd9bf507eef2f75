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

func init() {
	RegisterCommand("list", listCmd{})
}

type listCmd struct{}

func (listCmd) Usage() {
	fmt.Fprintln(os.Stderr, "imgfscmd list <imgFS_filename>")
}

func (listCmd) RunCommand(args []string) error {
	if len(args) != 1 {
		return imgfserr.New(imgfserr.NotEnoughArguments)
	}

	store, err := imgfsstore.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	hdr := store.Header()
	fmt.Printf("*** IMGFS HEADER START ***\n"+
		"TYPE: %s\tVERSION: %d\n"+
		"IMAGE COUNT: %d\tMAX IMAGES: %d\n"+
		"THUMBNAIL: %d x %d\tSMALL: %d x %d\n"+
		"*** IMGFS HEADER END ***\n",
		hdr.Name, hdr.Version, hdr.NbFiles, hdr.MaxFiles,
		hdr.ThumbWidth(), hdr.ThumbHeight(), hdr.SmallWidth(), hdr.SmallHeight())

	ids := store.ListIDs()
	if len(ids) == 0 {
		fmt.Println("<< empty imgFS >>")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
