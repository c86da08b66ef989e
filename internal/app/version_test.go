package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-server", "--version"}, true},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := HasVersionFlag(tc.args); got != tc.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintVersion(&buf)

	for _, want := range []string{"cyclecalc", "Commit:", "Go version:", runtime.Version()} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("PrintVersion() missing %q:\n%s", want, buf.String())
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()

	info := GetVersionInfo()
	if info.Version != Version || info.GoVersion != runtime.Version() {
		t.Errorf("GetVersionInfo() = %+v", info)
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("GetVersionInfo() runtime fields = %s/%s", info.OS, info.Arch)
	}
}
