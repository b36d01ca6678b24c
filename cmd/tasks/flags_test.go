package main

import (
	"errors"
	"testing"

	"github.com/amonks/tasklist/todo"
	"github.com/spf13/cobra"
)

func TestViewAliasSetsFilter(t *testing.T) {
	var filter filterFlag
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().Var(&filter, "filter", "Filter")
	setFlagAliases(cmd.Flags(), listFlagAliases)

	if err := cmd.Flags().Set("view", "trash"); err != nil {
		t.Fatalf("set view alias: %v", err)
	}
	if filter.Filter() != todo.FilterDeleted {
		t.Fatalf("expected deleted filter, got %q", filter.Filter())
	}
	if !hasChangedFlags(cmd, "filter") {
		t.Fatal("expected filter flag to be marked as changed")
	}
}

func TestHasChangedFlags(t *testing.T) {
	var a, b string
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().StringVar(&a, "a", "", "")
	cmd.Flags().StringVar(&b, "b", "", "")

	if hasChangedFlags(cmd, "a", "b") {
		t.Fatal("expected no changed flags")
	}
	if err := cmd.Flags().Set("b", "x"); err != nil {
		t.Fatalf("set b: %v", err)
	}
	if !hasChangedFlags(cmd, "a", "b") {
		t.Fatal("expected changed flags")
	}
}

func TestFilterFlag(t *testing.T) {
	var filter filterFlag
	if filter.Filter() != todo.FilterAll || filter.String() != string(todo.FilterAll) {
		t.Fatalf("expected unset filter to mean all, got %q", filter.String())
	}
	if err := filter.Set("completed"); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if filter.Filter() != todo.FilterCompleted {
		t.Fatalf("expected completed, got %q", filter.Filter())
	}
	if err := filter.Set("someday"); !errors.Is(err, todo.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if filter.Filter() != todo.FilterCompleted {
		t.Fatal("expected failed Set to keep the previous value")
	}
}

func TestVersionFlag(t *testing.T) {
	var version versionFlag
	if _, ok := version.Version(); ok {
		t.Fatal("expected unset version")
	}
	if version.String() != "" {
		t.Fatalf("expected empty string, got %q", version.String())
	}
	if err := version.Set("2"); err != nil {
		t.Fatalf("set 2: %v", err)
	}
	got, ok := version.Version()
	if !ok || got != todo.Version2 {
		t.Fatalf("expected version 2, got %v (%v)", got, ok)
	}
	if err := version.Set("7"); !errors.Is(err, todo.ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}
