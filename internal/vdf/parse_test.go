package vdf

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, tree *Tree)
	}{
		{
			name:  "single leaf",
			input: "\"name\"\t\t\"Half-Life\"\n",
			check: func(t *testing.T, tree *Tree) {
				v, ok := tree.Root.Get("name")
				if !ok || v != "Half-Life" {
					t.Errorf("Get(name) = %v, %v, want Half-Life, true", v, ok)
				}
			},
		},
		{
			name: "nested blocks",
			input: `"AppState"
{
	"appid"		"1228870"
	"UserConfig"
	{
		"language"		"english"
	}
}
`,
			check: func(t *testing.T, tree *Tree) {
				state, ok := ChildMap(tree.Root, "AppState")
				if !ok {
					t.Fatal("AppState block missing")
				}
				if v, _ := state.Get("appid"); v != "1228870" {
					t.Errorf("appid = %v, want 1228870", v)
				}
				uc, ok := ChildMap(state, "UserConfig")
				if !ok {
					t.Fatal("UserConfig block missing")
				}
				if v, _ := uc.Get("language"); v != "english" {
					t.Errorf("language = %v, want english", v)
				}
			},
		},
		{
			name:  "escaped quote and backslash in value",
			input: `"LaunchOptions"		"say \"hi\" c:\\games"` + "\n",
			check: func(t *testing.T, tree *Tree) {
				v, _ := tree.Root.Get("LaunchOptions")
				if v != `say "hi" c:\games` {
					t.Errorf("value = %q, want %q", v, `say "hi" c:\games`)
				}
			},
		},
		{
			name:  "lone backslash is literal",
			input: `"opts"		"a\b"` + "\n",
			check: func(t *testing.T, tree *Tree) {
				v, _ := tree.Root.Get("opts")
				if v != `a\b` {
					t.Errorf("value = %q, want %q", v, `a\b`)
				}
			},
		},
		{
			name:  "whitespace outside quotes is insignificant",
			input: "   \"key\"     \"value with  spaces\"   \n\n",
			check: func(t *testing.T, tree *Tree) {
				v, _ := tree.Root.Get("key")
				if v != "value with  spaces" {
					t.Errorf("value = %q", v)
				}
			},
		},
		{
			name:  "duplicate keys last write wins",
			input: "\"key\"\t\"first\"\n\"key\"\t\"second\"\n",
			check: func(t *testing.T, tree *Tree) {
				v, _ := tree.Root.Get("key")
				if v != "second" {
					t.Errorf("value = %q, want second", v)
				}
				if len(tree.Root.Keys()) != 1 {
					t.Errorf("keys = %v, want one entry", tree.Root.Keys())
				}
			},
		},
		{
			name:  "crlf line endings detected",
			input: "\"a\"\r\n{\r\n\t\"b\"\t\t\"c\"\r\n}\r\n",
			check: func(t *testing.T, tree *Tree) {
				if tree.Newline() != "\r\n" {
					t.Errorf("Newline() = %q, want CRLF", tree.Newline())
				}
			},
		},
		{
			name:  "space indentation captured",
			input: "\"a\"\n{\n    \"b\"  \"c\"\n}\n",
			check: func(t *testing.T, tree *Tree) {
				if tree.Indent() != "    " {
					t.Errorf("Indent() = %q, want four spaces", tree.Indent())
				}
			},
		},
		{
			name:  "empty document",
			input: "",
			check: func(t *testing.T, tree *Tree) {
				if len(tree.Root.Keys()) != 0 {
					t.Errorf("keys = %v, want empty", tree.Root.Keys())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			tt.check(t, tree)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "closing brace at top level",
			input:    "\"a\"\t\"b\"\n}\n",
			wantLine: 2,
			wantMsg:  "unbalanced",
		},
		{
			name:     "unclosed block",
			input:    "\"a\"\n{\n\t\"b\"\t\"c\"\n",
			wantMsg:  "unbalanced",
		},
		{
			name:     "unterminated quote",
			input:    "\"key\"\t\"value\n",
			wantLine: 1,
			wantMsg:  "unterminated",
		},
		{
			name:     "brace without key",
			input:    "{\n}\n",
			wantLine: 1,
			wantMsg:  "no preceding key",
		},
		{
			name:     "key without opening brace",
			input:    "\"a\"\n\"b\"\t\"c\"\n",
			wantLine: 2,
			wantMsg:  "expected '{'",
		},
		{
			name:     "key at end of input without brace",
			input:    "\"a\"\n",
			wantMsg:  "expected '{'",
		},
		{
			name:     "unquoted token",
			input:    "key value\n",
			wantLine: 1,
			wantMsg:  "expected quoted token",
		},
		{
			name:     "trailing garbage after value",
			input:    "\"key\"\t\"value\" extra\n",
			wantLine: 1,
			wantMsg:  "trailing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Parse() error %T, want *FormatError", err)
			}
			if tt.wantLine != 0 && formatErr.Line != tt.wantLine {
				t.Errorf("error line = %d, want %d", formatErr.Line, tt.wantLine)
			}
			if !strings.Contains(formatErr.Msg, tt.wantMsg) {
				t.Errorf("error msg = %q, want substring %q", formatErr.Msg, tt.wantMsg)
			}
		})
	}
}
