package naming

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestTargetFileName_Table(t *testing.T) {
	cases := []struct {
		in   string
		tag  string
		want string
	}{
		{"app-ebb8dd5b587f73a1", "", "app"},
		{"app-ebb8dd5b587f73a1", "v1", "app-v1"},
		{"app-ebb8dd5b5", "", "app-ebb8dd5b5"}, // too short to be a hash
		{"app-", "", "app-"},
		{"", "v1", "-v1"},
		{"-ebb8dd5b587f73a1", "", "-ebb8dd5b587f73a1"}, // hyphen at index 0
		{"app-ebb8dd5b587f73a1.exe", "v1", "app-v1.exe"},
		{".exe", "v1", "-v1.exe"},
		{"", "", ""},
		{"app", "", "app"},
		{"app.exe", "", "app.exe"},
		{"app-EBB8DD5B587F73A1", "", "app"}, // uppercase hex accepted
		{"app-ebb8dd5b587f73ag", "", "app-ebb8dd5b587f73ag"}, // 'g' is not hex
		{"my-app-ebb8dd5b587f73a1", "", "my-app"},            // last hyphen wins
	}
	for _, tc := range cases {
		got := TargetFileName(tc.in, tc.tag)
		if got != tc.want {
			t.Errorf("TargetFileName(%q, %q) = %q, want %q", tc.in, tc.tag, got, tc.want)
		}
	}
}

func TestSplit_MultiByteStem(t *testing.T) {
	s := Split("café\U0001F680-ebb8dd5b587f73a1.exe")
	if s.Stem != "café\U0001F680" {
		t.Fatalf("stem = %q", s.Stem)
	}
	if s.Hash != "ebb8dd5b587f73a1" {
		t.Fatalf("hash = %q", s.Hash)
	}
	if s.Extension != "exe" {
		t.Fatalf("extension = %q", s.Extension)
	}
}

func TestSplit_MultiByteCandidateRejected(t *testing.T) {
	// 8 two-byte runes give a candidate of 16 bytes; it must still be
	// rejected because the bytes are not ASCII hex.
	candidate := strings.Repeat("é", 8)
	in := "app-" + candidate
	s := Split(in)
	if s.Hash != "" || s.Stem != in {
		t.Fatalf("Split(%q) = %+v, want untouched stem", in, s)
	}
}

func TestSplit_ExeStrippedBeforeHashDetection(t *testing.T) {
	s := Split("tool-0123456789abcdef.exe")
	if s.Stem != "tool" || s.Hash != "0123456789abcdef" || s.Extension != "exe" {
		t.Fatalf("Split = %+v", s)
	}
}

func TestSplit_Empty(t *testing.T) {
	s := Split("")
	if s.Stem != "" || s.Hash != "" || s.Extension != "" {
		t.Fatalf("Split(\"\") = %+v", s)
	}
}

// TestRoundTrip_NoHashNoExe checks that splitting and recomposing without a
// tag reproduces the input whenever nothing is recognized in it.
func TestRoundTrip_NoHashNoExe(t *testing.T) {
	for _, in := range []string{"app", "app-", "my-tool-v2", "-x", "café", "a-b-c"} {
		s := Split(in)
		if got := Compose(s.Stem, s.Extension, ""); got != in {
			t.Errorf("round trip of %q gave %q", in, got)
		}
	}
}

// TestSplit_ExtensionIdempotence appends ".exe" to a recomposed name and
// checks the extension is recovered on a second split.
func TestSplit_ExtensionIdempotence(t *testing.T) {
	for _, in := range []string{"app", "app-ebb8dd5b587f73a1", "tool.exe"} {
		s := Split(in)
		again := Split(Compose(s.Stem, "", "") + ".exe")
		if again.Extension != "exe" {
			t.Errorf("re-split of %q lost the extension", in)
		}
	}
}

// TestTargetFileName_Randomized mirrors the property checks the exporter
// relies on: for generated inputs name[-hash][.ext], the output starts with
// the name, contains the tag, keeps the extension and never contains the
// hash text.
func TestTargetFileName_Randomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	exts := []string{"", "exe", "dylib", "so", "dll"}

	for i := 0; i < 2000; i++ {
		name := randomLowerWord(rng)
		ext := exts[rng.Intn(len(exts))]

		var tag string
		if rng.Intn(2) == 1 {
			tag = fmt.Sprintf("tag%d", rng.Intn(1000))
		}
		var hash string
		if rng.Intn(2) == 1 {
			hash = fmt.Sprintf("%016x", rng.Uint64())
		}

		in := name
		if hash != "" {
			in += "-" + hash
		}
		if ext != "" {
			in += "." + ext
		}

		out := TargetFileName(in, tag)

		if !strings.HasPrefix(out, name) {
			t.Fatalf("%q: output %q does not start with %q", in, out, name)
		}
		if tag != "" && !strings.Contains(out, tag) {
			t.Fatalf("%q: output %q misses tag %q", in, out, tag)
		}

		switch ext {
		case "", "exe":
			// Recognized shapes: the hash disappears and the
			// extension, when present, stays terminal.
			if hash != "" && strings.Contains(out, hash) {
				t.Fatalf("%q: output %q still contains hash", in, out)
			}
			if ext != "" && !strings.HasSuffix(out, "."+ext) {
				t.Fatalf("%q: output %q misses extension %q", in, out, ext)
			}
		default:
			// Other extensions are not special-cased: without a tag
			// the input passes through untouched.
			if tag == "" && out != in {
				t.Fatalf("%q: expected pass-through, got %q", in, out)
			}
		}

		minLen := len(name) + len(tag) + len(ext)
		if len(out) < minLen {
			t.Fatalf("%q: output %q shorter than its mandatory parts", in, out)
		}
	}
}

func randomLowerWord(rng *rand.Rand) string {
	n := 1 + rng.Intn(12)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + rng.Intn(26))
	}
	return string(b)
}

func TestNFC(t *testing.T) {
	// "é" decomposed (e + combining acute) composes to a single rune.
	in := "café-v1"
	want := "café-v1"
	if got := NFC(in); got != want {
		t.Fatalf("NFC(%q) = %q, want %q", in, got, want)
	}
}
