package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/b2model/blake2/blake2s"
)

// The text format is line oriented. Every block starts with a header line and
// lists its words in rows of eight, in the layout of the reference model dump:
//
//	block 0 final
//	t: 0x00000003 0x00000000
//	h00 - 07: 0x6b08e647 ...
//	m00 - 07: 0x00636261 ...
//	m08 - 15: 0x00000000 ...
//	init
//	v00 - 07: ...
//	v08 - 15: ...
//	round 0
//	v00 - 07: ...
//	v08 - 15: ...
//	...
//	out00 - 07: ...
//
// Blank lines and lines starting with '#' are ignored. G steps are written as
// comments.

const rowWidth = 8

func formatRow(label string, offset int, words []uint32) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%02d - %02d:", label, offset, offset+len(words)-1)
	for _, w := range words {
		fmt.Fprintf(&sb, " 0x%08x", w)
	}
	return sb.String()
}

func formatVector(label string, v []uint32) []string {
	var rows []string
	for i := 0; i < len(v); i += rowWidth {
		rows = append(rows, formatRow(label, i, v[i:i+rowWidth]))
	}
	return rows
}

func formatG(g *GRecord) string {
	s := &g.State
	return fmt.Sprintf("# g round=%d index=%d a=0x%08x b=0x%08x c=0x%08x d=0x%08x m0=0x%08x m1=0x%08x"+
		" a1=0x%08x a2=0x%08x b1=0x%08x b2=0x%08x b3=0x%08x b4=0x%08x c1=0x%08x c2=0x%08x"+
		" d1=0x%08x d2=0x%08x d3=0x%08x d4=0x%08x",
		g.Round, g.Index, s.A, s.B, s.C, s.D, s.M0, s.M1,
		s.A1, s.A2, s.B1, s.B2, s.B3, s.B4, s.C1, s.C2,
		s.D1, s.D2, s.D3, s.D4)
}

// Lines renders a block in the text format, one line per element.
func (b *Block) Lines() []string {
	header := fmt.Sprintf("block %d", b.Index)
	if b.Final {
		header += " final"
	}
	lines := []string{
		header,
		fmt.Sprintf("t: 0x%08x 0x%08x", b.T[0], b.T[1]),
	}
	lines = append(lines, formatVector("h", b.H[:])...)
	lines = append(lines, formatVector("m", b.M[:])...)
	lines = append(lines, "init")
	lines = append(lines, formatVector("v", b.V[:])...)

	g := 0
	for r := range b.Rounds {
		lines = append(lines, fmt.Sprintf("round %d", r))
		for ; g < len(b.G) && b.G[g].Round == r; g++ {
			lines = append(lines, formatG(&b.G[g]))
		}
		lines = append(lines, formatVector("v", b.Rounds[r][:])...)
	}
	lines = append(lines, formatVector("out", b.Out[:])...)
	return lines
}

// Write renders blocks to w in the text format.
func Write(w io.Writer, blocks []Block) error {
	bw := bufio.NewWriter(w)
	for i := range blocks {
		if i > 0 {
			bw.WriteString("\n")
		}
		for _, line := range blocks[i].Lines() {
			bw.WriteString(line)
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

// coverage tracks which rows of a parsed block have been seen.
type coverage struct {
	t, h, out bool
	m         [2]bool
	// v[0] is the init vector, v[r+1] the vector after round r; one flag
	// per row of eight words.
	v [blake2s.RoundCount + 1][2]bool
}

func (c *coverage) complete() bool {
	if !c.t || !c.h || !c.out || !c.m[0] || !c.m[1] {
		return false
	}
	for _, rows := range c.v {
		if !rows[0] || !rows[1] {
			return false
		}
	}
	return true
}

type parser struct {
	blocks   []Block
	coverage []coverage

	// vector section currently being filled: -1 for none, 0 for init,
	// r+1 for round r
	section int
}

// Parse reads a trace in the text format. Every block must be complete.
func Parse(r io.Reader) ([]Block, error) {
	p := &parser{section: -1}
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := p.parseLine(strings.Fields(text)); err != nil {
			return nil, errors.Wrapf(err, "trace: line %d", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "trace: read")
	}
	for i := range p.blocks {
		if !p.coverage[i].complete() {
			return nil, errors.Errorf("trace: block %d is incomplete", p.blocks[i].Index)
		}
	}
	return p.blocks, nil
}

func (p *parser) vector(b *Block) *[16]uint32 {
	if p.section == 0 {
		return &b.V
	}
	return &b.Rounds[p.section-1]
}

func (p *parser) parseLine(fields []string) error {
	if fields[0] == "block" {
		if len(fields) < 2 || len(fields) > 3 {
			return errors.New("malformed block header")
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrap(err, "block index")
		}
		b := Block{Index: idx}
		if len(fields) == 3 {
			if fields[2] != "final" {
				return errors.Errorf("unexpected block flag %q", fields[2])
			}
			b.Final = true
		}
		p.blocks = append(p.blocks, b)
		p.coverage = append(p.coverage, coverage{})
		p.section = -1
		return nil
	}

	if len(p.blocks) == 0 {
		return errors.New("data before the first block header")
	}
	b := &p.blocks[len(p.blocks)-1]
	cov := &p.coverage[len(p.coverage)-1]

	switch fields[0] {
	case "t:":
		words, err := parseWords(fields[1:], 2)
		if err != nil {
			return err
		}
		copy(b.T[:], words)
		cov.t = true
		return nil
	case "init":
		p.section = 0
		return nil
	case "round":
		if len(fields) != 2 {
			return errors.New("malformed round header")
		}
		r, err := strconv.Atoi(fields[1])
		if err != nil || r < 0 || r >= blake2s.RoundCount {
			return errors.Errorf("round %q out of range", fields[1])
		}
		p.section = r + 1
		return nil
	}

	// Word rows: "<label>NN - MM: w0 .. w7"
	if len(fields) != 3+rowWidth || fields[1] != "-" || !strings.HasSuffix(fields[2], ":") {
		return errors.Errorf("unrecognized line %q", strings.Join(fields, " "))
	}
	label := strings.TrimRight(fields[0], "0123456789")
	offset, err := strconv.Atoi(fields[0][len(label):])
	if err != nil {
		return errors.Wrap(err, "row offset")
	}
	words, err := parseWords(fields[3:], rowWidth)
	if err != nil {
		return err
	}

	switch {
	case label == "h" && offset == 0:
		copy(b.H[:], words)
		cov.h = true
	case label == "m" && (offset == 0 || offset == 8):
		copy(b.M[offset:offset+rowWidth], words)
		cov.m[offset/rowWidth] = true
	case label == "out" && offset == 0:
		copy(b.Out[:], words)
		cov.out = true
	case label == "v" && (offset == 0 || offset == 8):
		if p.section < 0 {
			return errors.New("v row outside of an init or round section")
		}
		copy(p.vector(b)[offset:offset+rowWidth], words)
		cov.v[p.section][offset/rowWidth] = true
	default:
		return errors.Errorf("unexpected row %s%02d", label, offset)
	}
	return nil
}

func parseWords(fields []string, n int) ([]uint32, error) {
	if len(fields) != n {
		return nil, errors.Errorf("got %d words, want %d", len(fields), n)
	}
	words := make([]uint32, n)
	for i, f := range fields {
		w, err := strconv.ParseUint(strings.TrimPrefix(f, "0x"), 16, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "word %d", i)
		}
		words[i] = uint32(w)
	}
	return words, nil
}
