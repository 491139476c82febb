package cli

import (
	"testing"
)

func TestRenderPrompt_Escapes(t *testing.T) {
	got := RenderPrompt(`\u@\h \W % `, "/home/u/src", "/home/u", "maquina", "u")
	want := "u@maquina src % "
	if got != want {
		t.Errorf("RenderPrompt = %q, esperado %q", got, want)
	}
}

func TestRenderPrompt_FullPathAbbreviated(t *testing.T) {
	got := RenderPrompt(`\w $ `, "/home/u/projetos/x", "/home/u", "h", "u")
	want := "~/projetos/x $ "
	if got != want {
		t.Errorf("RenderPrompt = %q, esperado %q", got, want)
	}
}

func TestRenderPrompt_HomeItself(t *testing.T) {
	got := RenderPrompt(`\W % `, "/home/u", "/home/u", "h", "u")
	if got != "~ % " {
		t.Errorf("RenderPrompt = %q, esperado %q", got, "~ % ")
	}
}

func TestRenderPrompt_ShellName(t *testing.T) {
	got := RenderPrompt(`\s`, "/", "", "h", "u")
	if got != "vbls" {
		t.Errorf("RenderPrompt = %q, esperado %q", got, "vbls")
	}
}

func TestRenderPrompt_UnknownEscapeKept(t *testing.T) {
	got := RenderPrompt(`\q % `, "/", "", "h", "u")
	if got != `\q % ` {
		t.Errorf("RenderPrompt = %q, esperado %q", got, `\q % `)
	}
}

func TestRenderPrompt_NoEscapes(t *testing.T) {
	got := RenderPrompt("% ", "/", "", "h", "u")
	if got != "% " {
		t.Errorf("RenderPrompt = %q, esperado %q", got, "% ")
	}
}
