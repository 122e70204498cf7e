// Package sums defines the chunksum file descriptors consumed by the
// comparison core: a File is an ordered sequence of content-addressed
// chunks, identified by an overall content hash and a path.
//
// The on-disk line format is:
//
//	<hex file hash>  <path>  <alg name>!<hex chunk hash>:<size>,...
//
// Fields are separated by two spaces; paths may themselves contain double
// spaces, so the hash is taken from the first field and the chunk list from
// the last, with everything in between re-joined as the path.
package sums

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Chunk is the smallest content-addressed unit compared. Hash is the
// lowercase hex digest of the chunk content; Size is its byte length.
// Two chunks with equal hashes always have equal sizes (chunking is
// deterministic).
type Chunk struct {
	Hash string
	Size int64
}

// File describes one chunked file: identity (overall content hash, path),
// the chunking algorithm name, and the ordered chunk sequence. The total
// size is derived from the chunks once at construction. Files are immutable
// after New returns.
type File struct {
	hash   string
	path   string
	alg    string
	chunks []Chunk
	size   int64
}

// New builds a File from its parts. Hashes are validated as hex and
// normalized to lowercase. Chunk sizes must be non-negative.
func New(hash, path, alg string, chunks []Chunk) (*File, error) {
	h, err := normalizeHex(hash)
	if err != nil {
		return nil, fmt.Errorf("file hash: %w", err)
	}
	f := &File{hash: h, path: path, alg: alg}
	f.chunks = make([]Chunk, len(chunks))
	for i, c := range chunks {
		ch, err := normalizeHex(c.Hash)
		if err != nil {
			return nil, fmt.Errorf("chunk %d hash: %w", i, err)
		}
		if c.Size < 0 {
			return nil, fmt.Errorf("chunk %d: negative size %d", i, c.Size)
		}
		f.chunks[i] = Chunk{Hash: ch, Size: c.Size}
		f.size += c.Size
	}
	return f, nil
}

// Hash returns the overall content hash (lowercase hex).
func (f *File) Hash() string { return f.hash }

// Path returns the recorded file path.
func (f *File) Path() string { return f.path }

// Alg returns the chunking algorithm name (e.g. "fck0sha2").
func (f *File) Alg() string { return f.alg }

// Size returns the total byte size, the sum of all chunk sizes.
func (f *File) Size() int64 { return f.size }

// Chunks returns a copy of the ordered chunk sequence.
func (f *File) Chunks() []Chunk {
	out := make([]Chunk, len(f.chunks))
	copy(out, f.chunks)
	return out
}

// ChunkHashes returns the chunk hashes in order, the token sequence used
// for alignment.
func (f *File) ChunkHashes() []string {
	out := make([]string, len(f.chunks))
	for i, c := range f.chunks {
		out[i] = c.Hash
	}
	return out
}

// Dump serializes the File back to its single-line form. Parse(f.Dump())
// reproduces f exactly.
func (f *File) Dump() string {
	parts := make([]string, 0, len(f.chunks))
	for _, c := range f.chunks {
		parts = append(parts, fmt.Sprintf("%s:%d", c.Hash, c.Size))
	}
	return fmt.Sprintf("%s  %s  %s!%s", f.hash, f.path, f.alg, strings.Join(parts, ","))
}

func (f *File) String() string {
	return fmt.Sprintf("<File %s %s %q>", f.hash, f.alg, f.path)
}

// Parse reads one chunksum line into a File.
func Parse(line string) (*File, error) {
	items := strings.Split(line, "  ")
	if len(items) < 3 {
		return nil, fmt.Errorf("malformed chunksum line: %q", line)
	}
	hash := items[0]
	// Paths may contain double spaces; the chunk list is always last.
	path := strings.Join(items[1:len(items)-1], "  ")
	alg, chunks, err := parseChunks(items[len(items)-1])
	if err != nil {
		return nil, fmt.Errorf("chunksum line %q: %w", line, err)
	}
	return New(hash, path, alg, chunks)
}

// parseChunks splits "<alg>!<hash>:<size>,..." into the algorithm name and
// the chunk list. An empty chunk list ("<alg>!") is valid.
func parseChunks(data string) (string, []Chunk, error) {
	alg, rest, ok := strings.Cut(data, "!")
	if !ok {
		return "", nil, fmt.Errorf("missing %q separator in %q", "!", data)
	}
	if rest == "" {
		return alg, nil, nil
	}
	fields := strings.Split(rest, ",")
	chunks := make([]Chunk, 0, len(fields))
	for _, fld := range fields {
		if fld == "" {
			continue
		}
		h, sz, ok := strings.Cut(fld, ":")
		if !ok {
			return "", nil, fmt.Errorf("malformed chunk %q", fld)
		}
		n, err := strconv.ParseInt(sz, 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("chunk size %q: %w", sz, err)
		}
		chunks = append(chunks, Chunk{Hash: h, Size: n})
	}
	return alg, chunks, nil
}

// ParseAll reads all non-empty lines from r into Files, preserving input
// order. A malformed line aborts with an error naming the offending line.
func ParseAll(r io.Reader) ([]*File, error) {
	var files []*File
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f, err := Parse(line)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// normalizeHex validates s as hex and returns its lowercase form.
func normalizeHex(s string) (string, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return hex.EncodeToString(b), nil
}
