package helper

import (
	"os"
	"testing"
)

type testCfg struct {
	Name   string `errorTxt:"the name" mandatory:"yes"`
	Level  string `errorTxt:"log level" mandatory:"yes"`
	Extras string `errorTxt:"extras"`
}

func TestValidateStructIsPopulated(t *testing.T) {
	// Test 1, missing mandatory fields are reported by their errorTxt tags.
	c := testCfg{}
	err := ValidateStructIsPopulated(&c)
	if err == nil {
		t.Fatal("expected an error for unset mandatory fields")
	}
	expected := "please supply values for the name, log level"
	if err.Error() != expected {
		t.Fatalf("expected %q; got %q", expected, err.Error())
	}
	// Test 2, fully populated struct passes.
	c = testCfg{Name: "a", Level: "info"}
	if err := ValidateStructIsPopulated(&c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Test 3, optional fields may stay unset.
	c = testCfg{Name: "a", Level: "info", Extras: ""}
	if err := ValidateStructIsPopulated(c); err != nil {
		t.Fatalf("unexpected error for optional field: %v", err)
	}
}

func TestInterfaceToString(t *testing.T) {
	got := InterfaceToString([]interface{}{float64(3), 3.14, []uint8("abc"), nil, 42, "x"})
	expected := []string{"3", "3.14", "abc", "", "42", "x"}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("index %v: expected %q; got %q", i, expected[i], got[i])
		}
	}
}

func TestCsvToStringSliceTrimSpaces(t *testing.T) {
	got := CsvToStringSliceTrimSpaces(" a, b ,,c ")
	expected := []string{"a", "b", "c"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v elements; got %v", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("index %v: expected %q; got %q", i, expected[i], got[i])
		}
	}
}

func TestGetEnvVar(t *testing.T) {
	key := "CDCDEMO_TEST_GET_ENV_VAR"
	_ = os.Unsetenv(key)
	if v, err := GetEnvVar(key, false); err != nil || v != "" {
		t.Fatalf("expected empty value without error; got %q, %v", v, err)
	}
	if _, err := GetEnvVar(key, true); err == nil {
		t.Fatal("expected an error for an unset mandatory variable")
	}
	_ = os.Setenv(key, "set")
	defer func() { _ = os.Unsetenv(key) }()
	if v, err := GetEnvVar(key, true); err != nil || v != "set" {
		t.Fatalf("expected set; got %q, %v", v, err)
	}
}

func TestReadValueFromEnvWithDefault(t *testing.T) {
	key := "CDCDEMO_TEST_ENV_VAR"
	_ = os.Unsetenv(key)
	if got := ReadValueFromEnvWithDefault(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback; got %q", got)
	}
	_ = os.Setenv(key, "set")
	defer func() { _ = os.Unsetenv(key) }()
	if got := ReadValueFromEnvWithDefault(key, "fallback"); got != "set" {
		t.Fatalf("expected set; got %q", got)
	}
}
