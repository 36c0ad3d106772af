// Package flagx provides helpers for parsing a subset of command-line flags
// without interfering with flags owned by other packages.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains the
// allowed flags (and their values). valueFlags are flags that take a value,
// either as the next argument ("-bucket raw-dev") or combined with '='
// ("--bucket=raw-dev"). boolFlags never consume the following argument, so
// "-force upload.jsonl" keeps "-force" and leaves "upload.jsonl" alone.
//
// Parameters:
//
//	args       — the command-line arguments (usually os.Args[1:])
//	valueFlags — allowed flag names that take a value (e.g. "-bucket")
//	boolFlags  — allowed flag names that take no value (e.g. "-force")
func FilterArgs(args []string, valueFlags, boolFlags []string) []string {
	withValue := make(map[string]struct{}, len(valueFlags))
	for _, f := range valueFlags {
		withValue[f] = struct{}{}
	}
	boolean := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		boolean[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form: keep the whole argument if the name is allowed
		// in either set (flag packages accept -force=true as well).
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := withValue[name]; ok {
				filtered = append(filtered, arg)
			} else if _, ok := boolean[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := boolean[arg]; ok {
			filtered = append(filtered, arg)
			continue
		}

		if _, ok := withValue[arg]; ok {
			filtered = append(filtered, arg)
			// The value may follow as a separate argument.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags inspects command-line arguments and extracts the config
// file path provided via the -c or -config flags.
//
// Only these flags are parsed; other arguments are ignored. If neither flag
// is present, an empty string is returned.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"}, nil)

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
