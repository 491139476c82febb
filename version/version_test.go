package version

import (
	"strings"
	"testing"
)

func TestExtractBaseVersion(t *testing.T) {
	cases := map[string]string{
		"1.2.3": "1.2.3",
		"1.2.3-0.20240101000000-abcdef123456": "1.2.3",
		"dev": "dev",
	}
	for in, want := range cases {
		if got := ExtractBaseVersion(in); got != want {
			t.Errorf("ExtractBaseVersion(%q) = %q, esperado %q", in, got, want)
		}
	}
}

func TestFormatVersionInfo(t *testing.T) {
	original := GetBuildInfoImpl
	defer func() { GetBuildInfoImpl = original }()

	GetBuildInfoImpl = func() (string, string, string) {
		return "9.9.9", "abc1234", "2024-01-01"
	}

	short := FormatVersionInfo(false)
	if short != "vbls 9.9.9" {
		t.Errorf("versão curta inesperada: %q", short)
	}

	long := FormatVersionInfo(true)
	if !strings.Contains(long, "abc1234") || !strings.Contains(long, "2024-01-01") {
		t.Errorf("versão longa inesperada: %q", long)
	}
}
