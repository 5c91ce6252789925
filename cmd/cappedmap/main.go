package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"

	"github.com/DakshBaxi/cappedmap/internal/store"
)

// CommandFunc is the function signature for a shell command.
type CommandFunc func(w io.Writer, s *store.Store, args []string)

// Global command registry.
var commands = map[string]CommandFunc{
	"PUT":      cmdPUT,
	"GET":      cmdGET,
	"DEL":      cmdDEL,
	"EXISTS":   cmdEXISTS,
	"SIZE":     cmdSIZE,
	"ENTRIES":  cmdENTRIES,
	"KEYS":     cmdKEYS,
	"CAPACITY": cmdCAPACITY,
	"INFO":     cmdINFO,
	"PING":     cmdPING,
	"HELP":     cmdHELP,
	"QUIT":     cmdQUIT,
}

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	s := store.NewStore(cfg.Capacity)

	if cfg.Seed != "" {
		n, err := replaySeed(s, cfg.Seed)
		if err != nil {
			log.Fatalf("error replaying seed %s: %v", cfg.Seed, err)
		}
		log.Printf("applied %d seed commands from %s", n, cfg.Seed)
	}

	log.Printf("cappedmap ready (capacity=%d)", cfg.Capacity)
	if err := serve(os.Stdin, os.Stdout, s, cfg.Prompt); err != nil {
		log.Fatalf("read error: %v", err)
	}
}

// serve reads one command per line from r and writes replies to w until
// QUIT or end of input. Lines may be of any length.
func serve(r io.Reader, w io.Writer, s *store.Store, prompt bool) error {
	if prompt {
		fmt.Fprintf(w, "+OK cappedmap shell\r\n")
		fmt.Fprintf(w, "Type HELP for commands.\r\n")
	}

	reader := bufio.NewReader(r)
	for {
		if prompt {
			fmt.Fprint(w, "> ")
		}
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		atEOF := err != nil

		cmd, args := splitCommand(raw)
		if cmd != "" {
			handler, ok := commands[cmd]
			if !ok {
				fmt.Fprintf(w, "-ERR unknown command '%s'\r\n", cmd)
			} else {
				handler(w, s, args)
				if cmd == "QUIT" {
					return nil
				}
			}
		}
		if atEOF {
			return nil
		}
	}
}

// rawTail lists commands whose trailing argument is taken verbatim from the
// line, keyed by how many ordinary arguments precede it.
var rawTail = map[string]int{
	"PUT":  1,
	"PING": 0,
}

// splitCommand upper-cases the command name and splits its arguments on
// whitespace. For commands in rawTail the rest of the line after the leading
// arguments is kept as one argument, inner spacing intact.
func splitCommand(line string) (string, []string) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToUpper(fields[0])
	n, ok := rawTail[cmd]
	if !ok || len(fields) <= n+1 {
		return cmd, fields[1:]
	}

	rest := line
	for i := 0; i <= n; i++ {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		rest = rest[strings.IndexFunc(rest, unicode.IsSpace):]
	}
	args := make([]string, 0, n+1)
	args = append(args, fields[1:n+1]...)
	return cmd, append(args, strings.TrimLeftFunc(rest, unicode.IsSpace))
}
