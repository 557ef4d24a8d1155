package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apotema/pzspec/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Target          string
	Pattern         string
	Regex           bool
	Tags            string
	ExcludeTags     string
	FailFast        bool
	UpdateSnapshots bool
	Quiet           bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Target:          f.Target,
		Pattern:         f.Pattern,
		Regex:           f.Regex,
		Tags:            f.Tags,
		ExcludeTags:     f.ExcludeTags,
		FailFast:        f.FailFast,
		UpdateSnapshots: f.UpdateSnapshots,
		Quiet:           f.Quiet,
	}
}

// ParseTarget splits a "file.go:123" argument into its parts.
func ParseTarget(arg string) (file string, line int, err error) {
	i := strings.LastIndex(arg, ":")
	if i <= 0 || i == len(arg)-1 {
		return "", 0, fmt.Errorf("invalid target %q, expected file:line", arg)
	}
	line, err = strconv.Atoi(arg[i+1:])
	if err != nil || line <= 0 {
		return "", 0, fmt.Errorf("invalid line number in target %q", arg)
	}
	return arg[:i], line, nil
}
