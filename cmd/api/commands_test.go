package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStdinPrompt(t *testing.T) {
	var out bytes.Buffer
	prompt := stdinPrompt(strings.NewReader(" 123456 \n"), &out)

	code, err := prompt(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if code != "123456" {
		t.Errorf("expected 123456, got: %q", code)
	}
	if out.String() != "Enter MFA code: " {
		t.Errorf("unexpected prompt: %q", out.String())
	}
}

func TestStdinPromptWithoutInput(t *testing.T) {
	var out bytes.Buffer
	prompt := stdinPrompt(strings.NewReader(""), &out)

	if _, err := prompt(context.Background()); err == nil {
		t.Error("expected an error when stdin is empty")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "login": false, "logout": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s command to be registered", name)
		}
	}
}
