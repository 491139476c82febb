package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("sem diretório home: %v", err)
	}

	got, err := ExpandPath("~/arquivo")
	if err != nil {
		t.Fatalf("Erro inesperado: %v", err)
	}
	if got != filepath.Join(home, "arquivo") {
		t.Errorf("ExpandPath = %q", got)
	}

	got, err = ExpandPath("/absoluto")
	if err != nil || got != "/absoluto" {
		t.Errorf("Caminho sem ~ não deveria mudar: %q, %v", got, err)
	}

	if _, err := ExpandPath("~outro/x"); err == nil {
		t.Error("~username deveria ser rejeitado")
	}
}

func TestAbbreviateHome(t *testing.T) {
	cases := []struct {
		path, home, want string
	}{
		{"/home/u", "/home/u", "~"},
		{"/home/u/src", "/home/u", "~/src"},
		{"/tmp", "/home/u", "/tmp"},
		{"/home/util", "/home/u", "/home/util"},
		{"/x", "", "/x"},
	}
	for _, c := range cases {
		if got := AbbreviateHome(c.path, c.home); got != c.want {
			t.Errorf("AbbreviateHome(%q, %q) = %q, esperado %q", c.path, c.home, got, c.want)
		}
	}
}
