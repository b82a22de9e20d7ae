package source

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kylebutts/s2/internal/cellid"
	"github.com/kylebutts/s2/internal/diag"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1, err := fs.Add("ids.txt", []byte("1\n2\n"), 0)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := fs.Add("ids.txt", []byte("3\n"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", id1, id2)
	}
	latest, ok := fs.GetLatest("ids.txt")
	if !ok || latest != id2 {
		t.Errorf("GetLatest = %d, %v; want %d", latest, ok, id2)
	}
	if got := fs.Get(id1).Len(); got != 2 {
		t.Errorf("first version has %d lines, want 2", got)
	}
	if fs.Get(5) != nil {
		t.Error("Get out of range must return nil")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d", fs.Len())
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		got := splitLines([]byte(tt.in))
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.txt")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("89c25c\r\nNA\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", f.Flags)
	}
	if got := f.Tokens(); len(got) != 2 || got[0] != "89c25c" || got[1] != "" {
		t.Errorf("Tokens = %q", got)
	}
}

func TestLoadReaderIsVirtual(t *testing.T) {
	fs := NewFileSet()
	id, err := fs.LoadReader(StdinName, strings.NewReader("x\n"))
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 || f.Path != StdinName {
		t.Errorf("file = %+v", f)
	}
	if f.FormatPath("absolute", "") != StdinName {
		t.Error("virtual files keep their name")
	}
}

func TestIDsColumn(t *testing.T) {
	fs := NewFileSet()
	id, _ := fs.AddVirtual("ids.txt", []byte("9926597683747749888\n0x89c25c\nNA\nnot-a-number\n\n"))
	bag := diag.NewBag(10)
	got := fs.Get(id).IDs(bag)

	want := cellid.Vector{cellid.ID(9926597683747749888), cellid.ID(0x89c25c), cellid.Missing, cellid.Missing, cellid.Missing}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, uint64(got[i]), uint64(want[i]))
		}
	}
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.IOBadLine || d.Pos != 3 || d.File != "ids.txt" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "line 4" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestParseLngLat(t *testing.T) {
	tests := []struct {
		in      string
		lng     float64
		lat     float64
		missing bool
		err     bool
	}{
		{"-122.4,37.7", -122.4, 37.7, false, false},
		{" 10 , -5 ", 10, -5, false, false},
		{"NA", 0, 0, true, false},
		{"NA,10", 0, 0, true, false},
		{"", 0, 0, true, false},
		{"10", 0, 0, true, true},
		{"x,1", 0, 0, true, true},
		{"1,y", 0, 0, true, true},
	}
	for _, tt := range tests {
		p, err := ParseLngLat(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseLngLat(%q) err = %v", tt.in, err)
			continue
		}
		if p.IsMissing() != tt.missing {
			t.Errorf("ParseLngLat(%q) missing = %v", tt.in, p.IsMissing())
			continue
		}
		if !tt.missing && (p.Lng != tt.lng || p.Lat != tt.lat) {
			t.Errorf("ParseLngLat(%q) = %v", tt.in, p)
		}
	}
}

func TestCoordinatesColumn(t *testing.T) {
	fs := NewFileSet()
	id, _ := fs.AddVirtual("pts.txt", []byte("-122.4,37.7\nNaN,10\nbad\n"))
	bag := diag.NewBag(10)
	lng, lat := fs.Get(id).Coordinates(bag)
	if len(lng) != 3 || len(lat) != 3 {
		t.Fatalf("lengths = %d, %d", len(lng), len(lat))
	}
	if lng[0] != -122.4 || lat[0] != 37.7 {
		t.Errorf("first = %v,%v", lng[0], lat[0])
	}
	if !math.IsNaN(lng[1]) || lat[1] != 10 {
		t.Errorf("NaN must pass through: %v,%v", lng[1], lat[1])
	}
	if !math.IsNaN(lng[2]) || !math.IsNaN(lat[2]) {
		t.Error("malformed line must be missing")
	}
	if bag.Len() != 1 || bag.Items()[0].Pos != 2 {
		t.Errorf("diagnostics = %+v", bag.Items())
	}
}

func TestColumnWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewColumnWriter(&buf)
	cw.WriteLine("89c25c")
	cw.WriteLine("")
	cw.WriteLine(FormatID(cellid.Missing))
	cw.WriteLine(FormatID(cellid.ID(42)))
	cw.WriteLine(FormatLevel(-1))
	cw.WriteLine(FormatLevel(30))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "89c25c\nNA\nNA\n42\nNA\n30\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLineNumber(t *testing.T) {
	n, err := LineNumber(0)
	if err != nil || n != 1 {
		t.Errorf("LineNumber(0) = %d, %v", n, err)
	}
	if _, err := LineNumber(-5); err == nil {
		t.Error("negative position must fail")
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/very/long/absolute/path/to/some/input/columns/tokens.txt"}
	if got := f.FormatPath("basename", ""); got != "tokens.txt" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "tokens.txt" {
		t.Errorf("auto = %q", got)
	}
	short := &File{Path: "a.txt"}
	if got := short.FormatPath("auto", ""); got != "a.txt" {
		t.Errorf("auto short = %q", got)
	}
}

func TestFormatPathRelative(t *testing.T) {
	base := t.TempDir()
	f := &File{Path: filepath.Join(base, "in", "ids.txt")}
	if got := f.FormatPath("relative", base); got != "in/ids.txt" {
		t.Errorf("relative = %q", got)
	}
	if got := f.FormatPath("sideways", base); got != f.Path {
		t.Errorf("unknown mode = %q, want path as loaded", got)
	}
}

func TestNormalizeKeepsLoneCR(t *testing.T) {
	got, flags := normalize([]byte("a\rb\r\nc"))
	if string(got) != "a\rb\nc" || flags != FileNormalizedCRLF {
		t.Errorf("normalize = %q, %b", got, flags)
	}
	if _, flags := normalize([]byte("plain\n")); flags != 0 {
		t.Errorf("flags = %b, want none", flags)
	}
}
