package main

import (
	"strconv"

	"github.com/amonks/tasklist/todo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var listFlagAliases = map[string]string{
	"view": "filter",
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

// filterFlag is a pflag.Value accepting the filter names and their aliases.
type filterFlag struct {
	value todo.Filter
}

func (f *filterFlag) String() string {
	if f.value == "" {
		return string(todo.FilterAll)
	}
	return string(f.value)
}

func (f *filterFlag) Set(value string) error {
	parsed, err := todo.ParseFilter(value)
	if err != nil {
		return err
	}
	f.value = parsed
	return nil
}

func (f *filterFlag) Type() string {
	return "filter"
}

// Filter returns the selected filter, FilterAll when unset.
func (f *filterFlag) Filter() todo.Filter {
	if f.value == "" {
		return todo.FilterAll
	}
	return f.value
}

// versionFlag is a pflag.Value for the capability level. Zero means unset.
type versionFlag struct {
	value todo.Version
}

func (v *versionFlag) String() string {
	if v.value == 0 {
		return ""
	}
	return strconv.Itoa(int(v.value))
}

func (v *versionFlag) Set(value string) error {
	parsed, err := todo.ParseVersion(value)
	if err != nil {
		return err
	}
	v.value = parsed
	return nil
}

func (v *versionFlag) Type() string {
	return "level"
}

// Version returns the selected version and whether one was set.
func (v *versionFlag) Version() (todo.Version, bool) {
	return v.value, v.value != 0
}
