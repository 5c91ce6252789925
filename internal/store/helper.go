package store

import "strings"

// HelpText returns a small help message for the shell.
func HelpText() string {
	lines := []string{
		"Supported commands (simple text protocol):",
		"  PUT key value           - store value under integer key; the value is",
		"                            the rest of the line, spacing kept",
		"  GET key                 - get value for key",
		"  DEL key                 - delete key, returns old value",
		"  EXISTS key              - check if key exists",
		"  SIZE                    - number of stored entries",
		"  ENTRIES                 - list entries, oldest write first",
		"  KEYS                    - list keys, oldest write first",
		"  CAPACITY                - show capacity and used budget",
		"  INFO                    - show basic stats (keys, evictions, reads, writes)",
		"  PING [msg]              - ping or echo message",
		"  HELP                    - show this help",
		"  QUIT                    - exit",
	}
	return strings.Join(lines, "\n")
}
