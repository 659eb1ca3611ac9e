package cmd

import (
	"os"
	"testing"

	"github.com/harborhealth/cdcdemo/actions"
)

func TestFlagNameToEnvVar(t *testing.T) {
	got := flagNameToEnvVar("data-seed")
	expected := "CDCDEMO_DATA_SEED"
	if got != expected {
		t.Fatalf("expected %v; got %v", expected, got)
	}
}

func TestGetCliFlag(t *testing.T) {
	fnGetConfigMiss := func(key string, out interface{}) error {
		return nil
	}
	flagName := "publication"
	mockEnvVar := flagNameToEnvVar(flagName)
	_ = os.Unsetenv(mockEnvVar)
	d := "myDefault"
	// Test 1 - default value applied when there is no config entry or env var.
	got := switches.getCliFlag(flagName, d, fnGetConfigMiss)
	if got.val != d {
		t.Fatalf("test 1 failed: expected default value %v; got %v", d, got.val)
	}
	// Test 2 - environment variable beats the supplied default.
	expected := "envTest"
	if err := os.Setenv(mockEnvVar, expected); err != nil {
		t.Fatalf("test 2 failed: unable to set environment variable %v", mockEnvVar)
	}
	defer func() { _ = os.Unsetenv(mockEnvVar) }()
	got = switches.getCliFlag(flagName, d, fnGetConfigMiss)
	if got.val != expected {
		t.Fatalf("test 2 failed: expected value %v from environment variable %v; got %v", expected, mockEnvVar, got.val)
	}
	// Test 3 - a config file entry beats the environment variable.
	fnGetConfigHit := func(key string, out interface{}) error {
		*(out.(*string)) = "fromConfig"
		return nil
	}
	got = switches.getCliFlag(flagName, d, fnGetConfigHit)
	if got.val != "fromConfig" {
		t.Fatalf("test 3 failed: expected config file value to win; got %v", got.val)
	}
}

func TestGetConnectionNameArgsFunc(t *testing.T) {
	var name string
	fn := getConnectionNameArgsFunc(&name, "")
	if err := fn(nil, []string{}); err == nil {
		t.Fatal("expected an error for missing connection name")
	}
	if err := fn(nil, []string{"pg"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "pg" {
		t.Fatalf("expected connection name pg; got %v", name)
	}
}

func TestGetConnectionPairArgsFunc(t *testing.T) {
	var src, tgt string
	fn := getConnectionPairArgsFunc(&src, &tgt, "")
	if err := fn(nil, []string{"pg"}); err == nil {
		t.Fatal("expected an error for a missing target connection name")
	}
	if err := fn(nil, []string{"pg", "snow"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != "pg" || tgt != "snow" {
		t.Fatalf("expected pg and snow; got %v and %v", src, tgt)
	}
}

func TestGetQueryFromArgsFunc(t *testing.T) {
	var src actions.ConnectionObject
	var query string
	fn := getQueryFromArgsFunc(&src, &query, "")
	if err := fn(nil, []string{"pg"}); err == nil {
		t.Fatal("expected an error for a missing query")
	}
	if err := fn(nil, []string{"pg.clinic", "select", "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.GetConnectionName() != "pg" {
		t.Fatalf("expected connection name pg; got %v", src.GetConnectionName())
	}
	if query != "select 1" {
		t.Fatalf("expected query to be joined; got %q", query)
	}
}
