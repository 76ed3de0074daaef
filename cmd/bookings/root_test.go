package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{"serve": false, "events": false, "version": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand", name)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "bookings dev") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestEventsCmd_Flags(t *testing.T) {
	cmd := newEventsCmd()
	if f := cmd.Flags().Lookup("group"); f == nil || f.DefValue != "" {
		t.Errorf("unexpected group flag %+v", f)
	}
	if cmd.Flags().Lookup("topic") == nil {
		t.Error("expected topic flag")
	}
}
