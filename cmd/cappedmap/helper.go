package main

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/DakshBaxi/cappedmap/internal/store"
)

// replaySeed applies a file of commands to s, e.g.
//
//	PUT 1 hello world
//	DEL 1
//
// and returns how many were applied. A missing file applies nothing.
func replaySeed(s *store.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil // nothing to replay yet
		}
		return 0, err
	}
	defer f.Close()

	applied := 0
	lineNo := 0
	reader := bufio.NewReader(f)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return applied, err
		}
		lineNo++
		if applySeedLine(s, lineNo, raw) {
			applied++
		}
		if err != nil {
			return applied, nil
		}
	}
}

// applySeedLine reports whether line changed s. Blank lines and lines
// starting with # are ignored.
func applySeedLine(s *store.Store, lineNo int, line string) bool {
	cmd, args := splitCommand(line)
	if cmd == "" || strings.HasPrefix(cmd, "#") {
		return false
	}

	switch cmd {
	case "PUT":
		if len(args) < 2 {
			log.Printf("seed line %d: PUT requires key and value", lineNo)
			return false
		}
		key, err := strconv.Atoi(args[0])
		if err != nil {
			log.Printf("seed line %d: invalid key %q", lineNo, args[0])
			return false
		}
		if _, _, err := s.Put(key, args[1]); err != nil {
			log.Printf("seed line %d: %v", lineNo, err)
			return false
		}
		return true

	case "DEL":
		if len(args) != 1 {
			log.Printf("seed line %d: DEL requires key", lineNo)
			return false
		}
		key, err := strconv.Atoi(args[0])
		if err != nil {
			log.Printf("seed line %d: invalid key %q", lineNo, args[0])
			return false
		}
		s.Del(key)
		return true

	default:
		log.Printf("seed line %d: unsupported command %q", lineNo, cmd)
		return false
	}
}
