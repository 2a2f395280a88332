package compiler

import (
	"errors"
	"strings"
	"testing"
)

func TestCompile(t *testing.T) {
	input := "exit 42;"

	res, err := Compile(input, LinuxAMD64)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if len(res.Tokens) != 3 {
		t.Errorf("expected 3 tokens, got %d", len(res.Tokens))
	}
	if res.Program.String() != "Exit(42)" {
		t.Errorf("Program = %s; want Exit(42)", res.Program)
	}
	assertContains(t, res.Assembly, "mov rdi, 42")
	if n := strings.Count(res.Assembly, "syscall"); n != 1 {
		t.Errorf("expected exactly one syscall, found %d", n)
	}
}

// TestCompileWhitespaceInsensitive checks that layout never reaches the output.
func TestCompileWhitespaceInsensitive(t *testing.T) {
	variants := []string{
		"exit 42;",
		"exit 42 ;",
		"  exit   42;  ",
		"\nexit\n42\n;\n",
		"exit\t42\r\n;",
	}
	for _, target := range Targets() {
		var first string
		for i, src := range variants {
			res, err := Compile(src, target)
			if err != nil {
				t.Fatalf("%s: Compile(%q) failed: %v", target, src, err)
			}
			if i == 0 {
				first = res.Assembly
				continue
			}
			if res.Assembly != first {
				t.Errorf("%s: Compile(%q) differs from Compile(%q):\n%s\nvs\n%s",
					target, src, variants[0], res.Assembly, first)
			}
		}
	}
}

func TestCompileDistinctValues(t *testing.T) {
	a, err := Compile("exit 1;", LinuxAMD64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile("exit 01;", LinuxAMD64)
	if err != nil {
		t.Fatal(err)
	}
	if a.Assembly == b.Assembly {
		t.Error("literals 1 and 01 should be emitted verbatim and differ")
	}
}

func TestCompileErrors(t *testing.T) {
	t.Run("Lexical", func(t *testing.T) {
		res, err := Compile("foo 5;", LinuxAMD64)
		var lexErr *LexicalError
		if !errors.As(err, &lexErr) {
			t.Fatalf("error %v is %T; want *LexicalError", err, err)
		}
		if lexErr.Text != "foo" {
			t.Errorf("Text = %q; want foo", lexErr.Text)
		}
		if res != nil {
			t.Errorf("expected no result on lex failure, got %+v", res)
		}
	})

	t.Run("Syntax", func(t *testing.T) {
		res, err := Compile("exit 5", LinuxAMD64)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("error %v is %T; want *SyntaxError", err, err)
		}
		if synErr.Expected != "semicolon" {
			t.Errorf("Expected = %q; want semicolon", synErr.Expected)
		}
		if res == nil || len(res.Tokens) != 2 || res.Assembly != "" {
			t.Errorf("expected tokens but no assembly, got %+v", res)
		}
	})

	t.Run("Empty Program", func(t *testing.T) {
		_, err := Compile("", LinuxAMD64)
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("error %v does not wrap ErrUnexpectedEOF", err)
		}
	})
}
