package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/etc/audiod.yaml", "/etc/audiod.yaml"},
		{"~", home},
		{"~/audiod.yaml", filepath.Join(home, "audiod.yaml")},
	}
	for _, c := range cases {
		got, err := ExpandHome(c.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ExpandHome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOpenAppendCreatesParentsAndAppends(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "logs", "nested", "overlay.log")

	for _, line := range []string{"one\n", "two\n"} {
		f, err := OpenAppend(p)
		if err != nil {
			t.Fatalf("OpenAppend: %v", err)
		}
		if _, err := f.WriteString(line); err != nil {
			t.Fatalf("write: %v", err)
		}
		_ = f.Close()
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "one\ntwo\n" {
		t.Fatalf("unexpected contents %q", b)
	}
}

func TestOpenAppendExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	f, err := OpenAppend("~/audiod.log")
	if err != nil {
		t.Fatalf("OpenAppend: %v", err)
	}
	_ = f.Close()
	if _, err := os.Stat(filepath.Join(home, "audiod.log")); err != nil {
		t.Fatalf("expected file under home: %v", err)
	}
}
