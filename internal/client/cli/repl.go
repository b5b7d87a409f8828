package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	ShowProfile(ctx context.Context) error
	Rename(ctx context.Context) error
	ListPets(ctx context.Context) error
	AddPet(ctx context.Context) error
	DeletePet(ctx context.Context, id string) error
	SelectPet(ctx context.Context, id string) error
	Unselect(ctx context.Context) error
	Scan(ctx context.Context, code string) error
	Photo(ctx context.Context, path string) error
	Status(ctx context.Context) error
	Reset(ctx context.Context) error
	Dump(ctx context.Context) error
}

const helpText = `Available commands:
  profile          show the profile name
  rename           change the profile name
  pets | l         list pets
  add              add a pet
  delete <id>      delete a pet
  select <id>      make a pet active
  unselect         clear the active pet
  scan <code>      check a barcode for the active pet
  photo <path>     check a barcode photo for the active pet
  status           show the last result
  dump             show what is stored
  reset            erase the stored session
  exit | quit      leave the program`

// runREPL starts a simple read–eval–print loop for the PetCheck CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. Commands that prompt for more input read from
// the same reader. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if status := statusFn(); status != "" {
			printFn(fmt.Sprintf("petcheck (%s)> ", status))
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), parts[0]))

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "rename":
			_ = a.Rename(ctx)

		case "pets", "l":
			_ = a.ListPets(ctx)

		case "add":
			_ = a.AddPet(ctx)

		case "delete", "select", "scan", "photo":
			if arg == "" {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, argName(cmd)))
				continue
			}
			switch cmd {
			case "delete":
				_ = a.DeletePet(ctx, arg)
			case "select":
				_ = a.SelectPet(ctx, arg)
			case "scan":
				_ = a.Scan(ctx, arg)
			case "photo":
				_ = a.Photo(ctx, arg)
			}

		case "unselect":
			_ = a.Unselect(ctx)

		case "status":
			_ = a.Status(ctx)

		case "dump":
			_ = a.Dump(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			// last line had no trailing newline
			return
		}
	}
}

func argName(cmd string) string {
	switch cmd {
	case "scan":
		return "code"
	case "photo":
		return "path"
	default:
		return "id"
	}
}
