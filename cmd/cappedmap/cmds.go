package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DakshBaxi/cappedmap/internal/store"
)

func parseKey(w io.Writer, raw string) (int, bool) {
	key, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(w, "-ERR invalid key '%s'\r\n", raw)
		return 0, false
	}
	return key, true
}

func writeValue(w io.Writer, v string, ok bool) {
	if ok {
		fmt.Fprintf(w, "\"%s\"\r\n", v)
	} else {
		fmt.Fprintf(w, "(nil)\r\n")
	}
}

// cmdPUT stores everything after the key verbatim and replies with the value
// that was replaced, or (nil) for a new key.
func cmdPUT(w io.Writer, s *store.Store, args []string) {
	if len(args) < 2 {
		fmt.Fprintf(w, "-ERR PUT requires key and value\r\n")
		return
	}
	key, ok := parseKey(w, args[0])
	if !ok {
		return
	}
	prev, existed, err := s.Put(key, args[1])
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			fmt.Fprintf(w, "-ERR %v\r\n", err)
			return
		}
		fmt.Fprintf(w, "-ERR internal error\r\n")
		return
	}
	writeValue(w, prev, existed)
}

func cmdGET(w io.Writer, s *store.Store, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(w, "-ERR GET requires key\r\n")
		return
	}
	key, ok := parseKey(w, args[0])
	if !ok {
		return
	}
	v, found := s.Get(key)
	writeValue(w, v, found)
}

func cmdDEL(w io.Writer, s *store.Store, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(w, "-ERR DEL requires key\r\n")
		return
	}
	key, ok := parseKey(w, args[0])
	if !ok {
		return
	}
	v, found := s.Del(key)
	writeValue(w, v, found)
}

func cmdEXISTS(w io.Writer, s *store.Store, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(w, "-ERR EXISTS requires key\r\n")
		return
	}
	key, ok := parseKey(w, args[0])
	if !ok {
		return
	}
	if s.Exists(key) {
		fmt.Fprintf(w, ":1\r\n")
	} else {
		fmt.Fprintf(w, ":0\r\n")
	}
}

func cmdSIZE(w io.Writer, s *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR SIZE does not take arguments\r\n")
		return
	}
	fmt.Fprintf(w, ":%d\r\n", s.Len())
}

func cmdENTRIES(w io.Writer, s *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR ENTRIES does not take arguments\r\n")
		return
	}
	entries := s.Entries()
	if len(entries) == 0 {
		fmt.Fprintf(w, "(empty)\r\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%d \"%s\"\r\n", e.Key, e.Value)
	}
}

func cmdKEYS(w io.Writer, s *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR KEYS does not take arguments\r\n")
		return
	}
	keys := s.Keys()
	if len(keys) == 0 {
		fmt.Fprintf(w, "(empty)\r\n")
		return
	}
	for _, k := range keys {
		fmt.Fprintf(w, "%d\r\n", k)
	}
}

func cmdCAPACITY(w io.Writer, s *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR CAPACITY does not take arguments\r\n")
		return
	}
	stats := s.Stats()
	fmt.Fprintf(w, "capacity:%d\r\n", stats.Capacity)
	fmt.Fprintf(w, "used:%d\r\n", stats.Used)
}

func cmdPING(w io.Writer, _ *store.Store, args []string) {
	if len(args) == 0 {
		fmt.Fprintf(w, "PONG\r\n")
		return
	}
	msg := strings.Join(args, " ")
	fmt.Fprintf(w, "%s\r\n", msg)
}

func cmdHELP(w io.Writer, _ *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR HELP does not take arguments\r\n")
		return
	}
	fmt.Fprintf(w, "%s\r\n", store.HelpText())
}

func cmdQUIT(w io.Writer, _ *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR QUIT does not take arguments\r\n")
		return
	}
	fmt.Fprintf(w, "+OK bye\r\n")
}

func cmdINFO(w io.Writer, s *store.Store, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(w, "-ERR INFO does not take arguments\r\n")
		return
	}
	stats := s.Stats()
	fmt.Fprintf(w, "# Store\r\n")
	fmt.Fprintf(w, "keys:%d\r\n", stats.Keys)
	fmt.Fprintf(w, "capacity:%d\r\n", stats.Capacity)
	fmt.Fprintf(w, "used:%d\r\n", stats.Used)
	fmt.Fprintf(w, "evictions:%d\r\n", stats.Evictions)
	fmt.Fprintf(w, "reads:%d\r\n", stats.Reads)
	fmt.Fprintf(w, "writes:%d\r\n", stats.Writes)
	fmt.Fprintf(w, "rejected:%d\r\n", stats.Rejected)
}
