package main

import (
	"github.com/duplicates-go/dupscan/internals"
	"gopkg.in/alecthomas/kingpin.v2"
)

// ScanOptions defines the validated parameters of one run
type ScanOptions struct {
	CountOnly       bool               `json:"count"`
	Quiet           bool               `json:"quiet"`
	JSONOutput      bool               `json:"json"`
	DumpTable       bool               `json:"dump-table"`
	ListHashAlgos   bool               `json:"hash-algorithms"`
	HashAlgorithm   internals.HashAlgo `json:"hash"`
	ExcludeBasename []string           `json:"exclude-basename"`
	Capacity        int                `json:"capacity"`
	Paths           []string           `json:"paths"`
}

// cliScanOptions defines the CLI arguments as kingpin requires them
type cliScanOptions struct {
	CountOnly       *bool
	Quiet           *bool
	JSONOutput      *bool
	DumpTable       *bool
	ListHashAlgos   *bool
	Hash            *string
	ConfigFile      *string
	ExcludeBasename *[]string
	Paths           *[]string
}

func registerScanOptions(app *kingpin.Application) *cliScanOptions {
	c := new(cliScanOptions)

	c.CountOnly = app.Flag("count", "only display the total number of duplicates").Short('c').Bool()
	c.Quiet = app.Flag("quiet", "do not write anything; exit with 1 iff no duplicate was found").Short('q').Bool()
	c.Hash = app.Flag("hash", "fingerprint algorithm to apply to file contents").Default(envOr("DUPSCAN_HASH", "")).String()
	c.ConfigFile = app.Flag("config", "YAML file providing run defaults").Default(envOr("DUPSCAN_CONFIG", "")).String()
	c.ExcludeBasename = app.Flag("exclude-basename", "skip directory entries with this basename").Strings()
	c.JSONOutput = app.Flag("json", "return output as JSON, not as plain text").Bool()
	c.DumpTable = app.Flag("dump-table", "write the fingerprint table to stderr after the scan").Bool()
	c.ListHashAlgos = app.Flag("hash-algorithms", "print the supported fingerprint algorithms and terminate").Bool()
	c.Paths = app.Arg("paths", "files or directories to scan").Strings()

	return c
}

// Validate checks conditions not covered by kingpin and migrates
// cliScanOptions to ScanOptions. Flags take precedence over environment
// variables, which take precedence over the config file.
func (c *cliScanOptions) Validate() (*ScanOptions, error) {
	cfg, err := loadConfig(*c.ConfigFile)
	if err != nil {
		return nil, err
	}

	opts := new(ScanOptions)
	opts.CountOnly = *c.CountOnly || envToBool("DUPSCAN_COUNT")
	opts.Quiet = *c.Quiet || envToBool("DUPSCAN_QUIET")
	opts.JSONOutput = *c.JSONOutput || envToBool("DUPSCAN_JSON")
	opts.DumpTable = *c.DumpTable
	opts.ListHashAlgos = *c.ListHashAlgos
	opts.Paths = append(opts.Paths, *c.Paths...)
	opts.ExcludeBasename = append(opts.ExcludeBasename, cfg.ExcludeBasename...)
	opts.ExcludeBasename = append(opts.ExcludeBasename, *c.ExcludeBasename...)

	hashName := *c.Hash
	if hashName == "" {
		hashName = cfg.Hash
	}
	if hashName == "" {
		hashName = string(internals.DefaultHash)
	}
	opts.HashAlgorithm, err = internals.HashAlgorithmFromString(hashName)
	if err != nil {
		return nil, err
	}

	// one bucket per root path; the config may widen the fallback
	opts.Capacity = len(opts.Paths)
	if opts.Capacity == 0 {
		opts.Capacity = cfg.Capacity
	}

	return opts, nil
}
