package utils

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("len = %d, want 8", len(code))
	}
	for _, c := range code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("char %q not in alphabet", c)
		}
	}
}

func TestGenerateCodeDefaultLength(t *testing.T) {
	code, err := GenerateCode(0)
	if err != nil {
		t.Fatalf("GenerateCode: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("len = %d, want default 6", len(code))
	}
}

func TestGenerateCodeSkipsAmbiguousChars(t *testing.T) {
	for _, c := range "0O1Il" {
		if strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("alphabet contains ambiguous char %q", c)
		}
	}
}
