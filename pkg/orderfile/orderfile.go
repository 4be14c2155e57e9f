// Package orderfile reads and rewrites the external line-oriented files a
// deployer manages. Only lines owned by a managed block are touched; every
// other line is passed through verbatim.
package orderfile

import (
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/types"
)

// Read loads path as lines without their terminators. A missing file is
// reported as ErrConfigMissing.
func Read(fsys types.FS, path string) ([]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigMissing, "external config %s does not exist", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}
	return Split(data), nil
}

// Split breaks data into lines. A final newline does not start a new line.
// Carriage returns are kept so untouched lines round-trip exactly.
func Split(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// Join renders lines with a newline after each one.
func Join(lines []string) []byte {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Write replaces path with lines.
func Write(fsys types.FS, path string, lines []string) error {
	if err := filesystem.WriteFileAtomic(fsys, path, Join(lines)); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

func matches(re *regexp.Regexp, line string) bool {
	return re.MatchString(strings.TrimSuffix(line, "\r"))
}

// Parse extracts the entries of d from lines in file order. Lines the
// bootstrap pattern rejects are skipped, as are names the dialect does not
// accept. A name seen twice keeps its first position and gains the tags of
// the later occurrence.
func Parse(lines []string, d *dialect.Dialect) []dialect.Line {
	var out []dialect.Line
	seen := map[string]int{}
	for _, raw := range lines {
		line, ok := d.ParseLine(strings.TrimSuffix(raw, "\r"))
		if !ok || !d.Accepts(line.Name) {
			continue
		}
		if i, dup := seen[line.Name]; dup {
			for _, tag := range line.Tags {
				if !slices.Contains(out[i].Tags, tag) {
					out[i].Tags = append(out[i].Tags, tag)
				}
			}
			continue
		}
		seen[line.Name] = len(out)
		out = append(out, line)
	}
	return out
}

// ReplaceBlock removes every line matching match and puts block where the
// first of them was. When nothing matched, block is appended.
func ReplaceBlock(lines []string, match *regexp.Regexp, block []string) []string {
	out := make([]string, 0, len(lines)+len(block))
	inserted := false
	for _, l := range lines {
		if !matches(match, l) {
			out = append(out, l)
			continue
		}
		if !inserted {
			out = append(out, block...)
			inserted = true
		}
	}
	if !inserted {
		out = append(out, block...)
	}
	return out
}

// RemoveMatching drops every line that matches any of the patterns.
func RemoveMatching(lines []string, patterns ...*regexp.Regexp) []string {
	return slices.DeleteFunc(slices.Clone(lines), func(l string) bool {
		return slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool { return matches(re, l) })
	})
}

// Render writes entries into lines using every block of d, in block order.
// entries must be in load order. Block patterns are expected to be
// disjoint: a later block would otherwise swallow an earlier one's lines.
func Render(lines []string, d *dialect.Dialect, entries []*entry.Entry) []string {
	for _, b := range d.Blocks {
		var block []string
		for _, e := range entries {
			if b.Selects(e) {
				block = append(block, d.FormatLine(b, e))
			}
		}
		lines = ReplaceBlock(lines, b.Match, block)
	}
	return lines
}
