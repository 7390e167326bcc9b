package main

import (
	"reflect"
	"testing"
)

func TestSplitSQL(t *testing.T) {
	sql := "-- header\nCREATE TABLE a (id int);\n\n-- note\nCREATE INDEX i ON a (id);\n"
	want := []string{"CREATE TABLE a (id int)", "CREATE INDEX i ON a (id)"}
	if got := splitSQL(sql); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSQL = %q, want %q", got, want)
	}
}

func TestWithFieldLeavesReferenceIntact(t *testing.T) {
	req := withField("transportation.main_mode", "bicycle")
	if got := req["transportation"].(map[string]any)["main_mode"]; got != "bicycle" {
		t.Fatalf("main_mode = %v", got)
	}
	if got := busanRequest()["transportation"].(map[string]any)["main_mode"]; got != "public_transport" {
		t.Fatalf("reference request mutated: %v", got)
	}
}
