package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/duplicates-go/dupscan/internals"
	"gopkg.in/alecthomas/kingpin.v2"
)

const programName = "dupscan"
const programVersion = "1.0.0"

// errorResponse is the CLI response for errors
type errorResponse struct {
	ErrorMessage string `json:"error"`
	ExitCode     int    `json:"-"`
	jsonOutput   bool
	device       io.Writer
}

func (e *errorResponse) Print() int {
	if e.jsonOutput {
		fmt.Fprintf(e.device, "%s\n", e.JSON())
	} else {
		fmt.Fprintf(e.device, "%s\n", e.String())
	}
	return e.ExitCode
}

func (e *errorResponse) String() string {
	return `cli: error: ` + e.ErrorMessage
}

func (e *errorResponse) JSON() string {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(e.device, "JSON marshalling error: %s", err)
		return ""
	}
	return string(jsonBytes)
}

func handleError(message string, code int, jsonOut bool, device io.Writer) int {
	resp := &errorResponse{ErrorMessage: message, ExitCode: code, jsonOutput: jsonOut, device: device}
	return resp.Print()
}

// cli parses the given arguments and runs the scan.
// It returns the process exit code.
func cli(args []string, stdout, stderr io.Writer) int {
	// no arguments at all ⇒ nothing to do
	if len(args) == 0 {
		return 0
	}

	app := kingpin.New(programName, "Identify duplicate files by content, not by name.")
	app.Version(programVersion).Author("duplicates-go")
	app.HelpFlag.Short('h')
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	// kingpin terminates on --help and --version; record instead of exiting
	terminated := false
	terminateCode := 0
	app.Terminate(func(code int) {
		terminated = true
		terminateCode = code
	})

	scanOpts := registerScanOptions(app)

	_, err := app.Parse(args)
	if terminated {
		return terminateCode
	}
	if err != nil {
		return handleError(err.Error(), 1, jsonOutput(args), stderr)
	}

	options, err := scanOpts.Validate()
	if err != nil {
		return handleError(err.Error(), 1, jsonOutput(args), stderr)
	}

	return run(options, stdout, stderr)
}

// run executes one scan over the validated options and selects the exit code
func run(options *ScanOptions, stdout, stderr io.Writer) int {
	var w Output = &plainOutput{device: stdout}

	if options.ListHashAlgos {
		type dataSet struct {
			SupHashAlgos []string `json:"supported-hash-algorithms"`
			Default      string   `json:"default"`
		}
		b, err := json.Marshal(dataSet{internals.SupportedHashAlgorithms(), string(internals.DefaultHash)})
		if err != nil {
			return handleError(err.Error(), 1, options.JSONOutput, stderr)
		}
		w.Println(string(b))
		return 0
	}

	table := internals.NewTable(options.Capacity)
	scanner := internals.NewScanner(table, options.HashAlgorithm.Algorithm())
	scanner.Diag = stderr
	scanner.ExcludeBasename = options.ExcludeBasename

	switch {
	case options.Quiet || options.CountOnly:
		// tally only, no per-duplicate messages
	case options.JSONOutput:
		scanner.OnDuplicate = func(path, original string) {
			type duplicateReport struct {
				Path     string `json:"path"`
				Original string `json:"original"`
			}
			b, err := json.Marshal(duplicateReport{Path: path, Original: original})
			if err != nil {
				fmt.Fprintf(stderr, "could not serialize duplicate report: %s\n", err)
				return
			}
			w.Println(string(b))
		}
	default:
		scanner.OnDuplicate = func(path, original string) {
			w.Printfln(`%s is a duplicate of %s`, path, original)
		}
	}

	count := scanner.ScanRoots(options.Paths)

	if options.CountOnly && !options.Quiet {
		if options.JSONOutput {
			w.Printfln(`{"duplicates":%d}`, count)
		} else {
			w.Println(strconv.Itoa(count))
		}
	}

	if options.DumpTable {
		if err := table.Format(stderr); err != nil {
			return handleError(err.Error(), 1, options.JSONOutput, stderr)
		}
	}

	// quiet mode signals the absence of duplicates via the exit status
	if options.Quiet && count == 0 {
		return 1
	}
	return 0
}

func main() {
	os.Exit(cli(os.Args[1:], os.Stdout, os.Stderr))
}
