package naming

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// hashLen is the length of the disambiguating hash cargo appends to
	// artifact file names (16 lowercase-or-uppercase hex digits).
	hashLen = 16

	exeSuffix = ".exe"
)

// SplitName is the decomposition of a raw artifact file name into the parts
// the exporter cares about. Empty Hash or Extension means the corresponding
// part was not recognized in the input.
type SplitName struct {
	// Stem is everything before a recognized hash. When no hash is
	// recognized the stem is the whole (extension-stripped) input,
	// including anything that merely looked like a hash.
	Stem string
	// Hash is the trailing 16-hex-digit segment, without its leading
	// hyphen. It is recorded only so the caller knows it was stripped;
	// Compose never emits it.
	Hash string
	// Extension is "exe" when the input ended in ".exe". No other
	// extension is special-cased.
	Extension string
}

// Split decomposes a raw artifact file name. A trailing ".exe" is stripped
// first, then the segment after the last hyphen is accepted as a hash only
// if it is exactly 16 ASCII hex digits. A hyphen at index 0 never starts a
// hash. Split is total: any string, including the empty string and
// non-ASCII content, yields a defined result.
func Split(raw string) SplitName {
	s := SplitName{Stem: raw}
	if strings.HasSuffix(raw, exeSuffix) {
		s.Extension = "exe"
		s.Stem = strings.TrimSuffix(raw, exeSuffix)
	}

	rest := s.Stem
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 {
		return s
	}
	candidate := rest[i+1:]
	if !isHashSegment(candidate) {
		return s
	}
	s.Stem = rest[:i]
	s.Hash = candidate
	return s
}

// isHashSegment reports whether s is exactly 16 ASCII hex digits. The byte
// length check is sound because every accepted byte is single-byte ASCII;
// multi-byte content fails the hex check before length can mislead.
func isHashSegment(s string) bool {
	if len(s) != hashLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Compose reassembles an output file name from a stem, an optional
// extension (without the dot) and an optional tag. The tag goes between the
// stem and the extension. A recognized hash is intentionally absent here.
func Compose(stem, extension, tag string) string {
	var b strings.Builder
	b.Grow(len(stem) + len(tag) + len(extension) + 2)
	b.WriteString(stem)
	if tag != "" {
		b.WriteByte('-')
		b.WriteString(tag)
	}
	if extension != "" {
		b.WriteByte('.')
		b.WriteString(extension)
	}
	return b.String()
}

// TargetFileName derives the exported file name for a raw artifact name:
// the hash is dropped, the tag (if any) is inserted before a recognized
// ".exe" extension.
func TargetFileName(raw, tag string) string {
	s := Split(raw)
	return Compose(s.Stem, s.Extension, tag)
}

// NFC returns name normalized to Unicode NFC. Build tools on macOS can
// report NFD-decomposed names; the exporter applies this only when asked.
func NFC(name string) string {
	return norm.NFC.String(name)
}
