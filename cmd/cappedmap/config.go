package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultCapacity = 1024
	defaultEnvFile  = ".env"

	envCapacity = "CAPPEDMAP_CAPACITY"
	envSeed     = "CAPPEDMAP_SEED"
)

type Config struct {
	Capacity int
	Seed     string // optional file of PUT/DEL lines applied at startup
	Prompt   bool
}

// loadConfig resolves settings from flags, then the environment, then the
// .env file, then defaults. Variables already set in the environment win
// over the .env file.
func loadConfig(args []string, stderr io.Writer) (*Config, error) {
	fset := flag.NewFlagSet("cappedmap", flag.ContinueOnError)
	fset.SetOutput(stderr)
	capacity := fset.Int("capacity", defaultCapacity, "maximum total length of stored values")
	seed := fset.String("seed", "", "file of PUT/DEL commands to apply at startup")
	envFile := fset.String("env", defaultEnvFile, "dotenv file to load")
	prompt := fset.Bool("prompt", true, "print a prompt before each command")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading env file %s: %w", *envFile, err)
	}

	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := &Config{Capacity: *capacity, Seed: *seed, Prompt: *prompt}
	if !set["capacity"] {
		if v, ok := os.LookupEnv(envCapacity); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q: %w", envCapacity, v, err)
			}
			cfg.Capacity = n
		}
	}
	if !set["seed"] {
		if v, ok := os.LookupEnv(envSeed); ok {
			cfg.Seed = v
		}
	}

	if cfg.Capacity < 0 {
		return nil, fmt.Errorf("capacity must not be negative, got %d", cfg.Capacity)
	}
	return cfg, nil
}
