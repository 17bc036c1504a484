package vm_test

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"testing"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/host"
	"github.com/vic/ivm/pkg/stdext"
)

//go:embed testdata
var testdataFS embed.FS

func readTestdata(t *testing.T, path string) string {
	t.Helper()
	b, err := testdataFS.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

// readback joins the readback of every recorded inert pair's source, one
// per line, in the order the VM recorded them.
func readback(h *host.Host) string {
	lines := make([]string, len(h.VM.Inert))
	for i, p := range h.VM.Inert {
		lines[i] = h.Readback(p.Src).String()
	}
	return strings.Join(lines, "\n") + "\n"
}

func runNet(t *testing.T, name string) (*host.Host, *bytes.Buffer) {
	t.Helper()
	src := readTestdata(t, "testdata/"+name+"/net.iv")

	var stdout bytes.Buffer
	h := host.New()
	stdext.Register(h, &stdout, strings.NewReader(""))

	if err := h.ParseSource(src); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := h.Boot("::main", extrinsics.N32Port(0)); err != nil {
		t.Fatalf("boot: %v", err)
	}
	if err := h.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return h, &stdout
}

// TestGoldenScenarios runs the end-to-end scenarios of spec.md §8 to
// completion and compares their readback against the recorded expectation.
func TestGoldenScenarios(t *testing.T) {
	cases := []string{
		"identity",
		"addition",
		"branch_zero",
		"branch_nonzero",
		"duplication",
		"fibonacci",
	}
	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := runNet(t, name)
			want := readTestdata(t, "testdata/"+name+"/expected.txt")
			got := readback(h)
			if got != want {
				t.Fatalf("readback mismatch:\n got: %q\nwant: %q", got, want)
			}
		})
	}
}

func TestGoldenPrinting(t *testing.T) {
	h, stdout := runNet(t, "printing")
	_ = h

	wantStr := strings.TrimSpace(readTestdata(t, "testdata/printing/expected_byte.txt"))
	want, err := strconv.Atoi(wantStr)
	if err != nil {
		t.Fatalf("bad expected_byte.txt: %v", err)
	}

	if stdout.Len() == 0 {
		t.Fatal("nothing written to stdout")
	}
	if got := int(stdout.Bytes()[0]); got != want {
		t.Fatalf("first byte = %d, want %d", got, want)
	}
}
