package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMoveDefaults(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	system, user, err := c.Move("rnbqkbnr/pppppppp")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if system != "You suggest legal chess moves for black and respond with four integers." {
		t.Fatalf("unexpected system prompt: %q", system)
	}
	want := "You are a chess engine playing black. Given the board state: rnbqkbnr/pppppppp\nReturn four integers 'sr sc er ec' for your move."
	if user != want {
		t.Fatalf("unexpected user prompt:\n got %q\nwant %q", user, want)
	}
}

func TestMoveBoardIsVerbatim(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	board := "{{.Board}} <b>&amp;\n"
	_, user, err := c.Move(board)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := "You are a chess engine playing black. Given the board state: " + board + "\nReturn four integers 'sr sc er ec' for your move."
	if user != want {
		t.Fatalf("board not inserted verbatim: %q", user)
	}
}

func TestMoveEmptyBoard(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, user, err := c.Move("")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if user != "You are a chess engine playing black. Given the board state: \nReturn four integers 'sr sc er ec' for your move." {
		t.Fatalf("unexpected user prompt: %q", user)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("move:\n  system: \"Play black.\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	system, user, err := c.Move("x")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if system != "Play black." {
		t.Fatalf("override not applied: %q", system)
	}
	if user == "" {
		t.Fatalf("embedded user prompt should remain")
	}
}

func TestOverrideDirDuplicateKey(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.yaml", "b.yml"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("move:\n  user: \"x\"\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestRenderMissingKey(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Render("move.nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestFlattenRejectsNonString(t *testing.T) {
	if _, err := parseYAMLToFlat([]byte("move:\n  user: 3\n")); err == nil {
		t.Fatalf("expected error for non-string leaf")
	}
}
