package cargo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Artifact is one executable reported by the build's message stream.
type Artifact struct {
	Executable string
}

// message mirrors the subset of cargo's --message-format=json records the
// exporter reads. Unknown fields are ignored by encoding/json.
type message struct {
	Reason     string `json:"reason"`
	Executable string `json:"executable"`
}

const reasonCompilerArtifact = "compiler-artifact"

// CollectArtifacts consumes the build's stdout line by line and returns the
// executables it announced. Only "compiler-artifact" records with a
// non-empty executable count: cargo reports `"executable": null` for
// libraries and other non-binary artifacts, which decodes to the empty
// string here. The stream is read exactly once; a line that is not valid
// JSON aborts the run.
func CollectArtifacts(r io.Reader) ([]Artifact, error) {
	sc := bufio.NewScanner(r)
	// Artifact records carry full dependency metadata and easily exceed
	// the default 64 KiB token limit.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out []Artifact
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var m message
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, fmt.Errorf("parse build message %q: %w", truncateLine(line), err)
		}
		if m.Reason != reasonCompilerArtifact || m.Executable == "" {
			continue
		}
		out = append(out, Artifact{Executable: m.Executable})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read build output: %w", err)
	}
	return out, nil
}

func truncateLine(line []byte) string {
	const max = 120
	if len(line) <= max {
		return string(line)
	}
	return string(line[:max]) + "..."
}
