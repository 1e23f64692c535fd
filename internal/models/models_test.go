package models

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestScreenString(t *testing.T) {
	tests := []struct {
		screen Screen
		want   string
	}{
		{ScreenIntro, "intro"},
		{ScreenPlay, "play"},
		{ScreenCelebrate, "celebrate"},
		{ScreenSurvey, "survey"},
		{ScreenEnd, "end"},
		{Screen(42), "screen(42)"},
	}
	for _, tt := range tests {
		if got := tt.screen.String(); got != tt.want {
			t.Errorf("Screen(%d).String() = %q, want %q", int(tt.screen), got, tt.want)
		}
	}
}

func TestGameStateClone(t *testing.T) {
	s := GameState{CompletedWordKeys: []WordKey{"sun"}}
	c := s.Clone()
	c.CompletedWordKeys[0] = "cat"
	if s.CompletedWordKeys[0] != "sun" {
		t.Errorf("Clone shares the completed list: got %q", s.CompletedWordKeys[0])
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	prefs, err := LoadPreferences(dir)
	if err != nil {
		t.Fatalf("LoadPreferences on missing dir: %v", err)
	}
	if prefs.Language != "" {
		t.Errorf("Expected empty language, got %q", prefs.Language)
	}

	if err := (&Preferences{Language: "en"}).Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	prefs, err = LoadPreferences(dir)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Language != "en" {
		t.Errorf("Expected language en, got %q", prefs.Language)
	}
	if _, err := os.Stat(filepath.Join(dir, preferencesFile+".tmp")); !os.IsNotExist(err) {
		t.Error("Temp file should not be left behind")
	}
}

func TestLoadPreferencesCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, preferencesFile), []byte("language: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPreferences(dir); err == nil {
		t.Error("Expected error for corrupt preferences file")
	}
}

func TestGameStateIsNotSerialized(t *testing.T) {
	typ := reflect.TypeOf(GameState{})
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag; tag != "" {
			t.Errorf("GameState.%s has tag %q; game state is never saved", typ.Field(i).Name, tag)
		}
	}
}
