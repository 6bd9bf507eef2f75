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

// The imgfscmd binary is the command-line front end to an imgFS
// container: list, create, read, insert and delete.
//
// Its command registry is modeled on camlistore's pkg/cmdmain: each
// subcommand is a CommandRunner registered by name in init(), and Main
// dispatches argv[1] to the matching runner's RunCommand.
package main

import (
	"fmt"
	"os"

	"github.com/yshdb5/imgfs/pkg/imgfserr"
)

// CommandRunner is the interface every imgfscmd subcommand implements.
type CommandRunner interface {
	Usage()
	RunCommand(args []string) error
}

var commands = make(map[string]CommandRunner)

// RegisterCommand adds a subcommand to the registry. It is called from
// each subcommand's init().
func RegisterCommand(name string, cmd CommandRunner) {
	if _, dup := commands[name]; dup {
		panic(fmt.Sprintf("duplicate command %q registered", name))
	}
	commands[name] = cmd
}

func usage() {
	fmt.Fprintln(os.Stderr, "imgfscmd [COMMAND] [ARGUMENTS]")
	fmt.Fprintln(os.Stderr, "   help: displays this help.")
	fmt.Fprintln(os.Stderr, "   list <imgFS_filename>: list imgFS content.")
	fmt.Fprintln(os.Stderr, "   create <imgFS_filename> [options]: create a new imgFS.")
	fmt.Fprintln(os.Stderr, "       options are:")
	fmt.Fprintln(os.Stderr, "           -max_files <MAX_FILES>: maximum number of files.")
	fmt.Fprintln(os.Stderr, "                                   default value is 128")
	fmt.Fprintln(os.Stderr, "           -thumb_res <X_RES> <Y_RES>: resolution for thumbnail images.")
	fmt.Fprintln(os.Stderr, "                                   default value is 64x64, max 128x128")
	fmt.Fprintln(os.Stderr, "           -small_res <X_RES> <Y_RES>: resolution for small images.")
	fmt.Fprintln(os.Stderr, "                                   default value is 256x256, max 512x512")
	fmt.Fprintln(os.Stderr, "   read <imgFS_filename> <imgID> [original|orig|thumbnail|thumb|small]:")
	fmt.Fprintln(os.Stderr, "       read an image from the imgFS and save it to a file.")
	fmt.Fprintln(os.Stderr, "       default resolution is \"original\".")
	fmt.Fprintln(os.Stderr, "   insert <imgFS_filename> <imgID> <filename>: insert a new image in the imgFS.")
	fmt.Fprintln(os.Stderr, "   delete <imgFS_filename> <imgID>: delete image imgID from imgFS.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(int(imgfserr.NotEnoughArguments))
	}

	name := os.Args[1]
	if name == "help" {
		usage()
		os.Exit(0)
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %q\n", name)
		usage()
		os.Exit(int(imgfserr.InvalidCommand))
	}

	if err := cmd.RunCommand(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		cmd.Usage()
		os.Exit(int(imgfserr.KindOf(err)))
	}
}
