package bedgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/peakcall/interval"
)

// maxLineLen bounds a single bedgraph line.  Four short columns never come
// close, but some tools append long annotation columns.
const maxLineLen = 1 << 20

// A Record is one bedgraph line: a scored, 0-based half-open interval.
type Record struct {
	Chrom string
	Start interval.PosType
	End   interval.PosType
	Score float64
}

// Len returns the number of bases covered by the record.
func (r Record) Len() int {
	return int(r.End - r.Start)
}

var errEOF = errors.New("eof")

// Scanner reads bedgraph records.  The Scan method returns the next record,
// returning a boolean indicating whether the read succeeded.  Scanners are
// not threadsafe.
//
// Columns are separated by any run of tabs or spaces; columns past the fourth
// are ignored.  Blank lines, '#' comments and UCSC "track"/"browser" lines
// are skipped, as are zero-length records.  Everything else must parse:
// a missing column or a non-numeric coordinate or score stops the scan with
// an errors.Invalid error naming the line.
type Scanner struct {
	b      *bufio.Scanner
	err    error
	lineno int
	tokens [4][]byte
	chrom  string
}

// NewScanner constructs a new Scanner that reads raw bedgraph data from the
// provided reader.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 64<<10), maxLineLen)
	return &Scanner{b: b}
}

// Scan the next record into rec.  Once Scan returns false, it never returns
// true again.  Upon completion, the user should check the Err method to
// determine whether scanning stopped because of an error or because the end
// of the stream was reached.
func (s *Scanner) Scan(rec *Record) bool {
	for s.err == nil {
		if !s.b.Scan() {
			if s.err = s.b.Err(); s.err == nil {
				s.err = errEOF
			}
			return false
		}
		s.lineno++
		line := s.b.Bytes()
		nToken := interval.GetTokens(s.tokens[:], line)
		if nToken == 0 || interval.IsHeader(s.tokens[0]) {
			continue
		}
		if nToken < len(s.tokens) {
			s.err = s.lineError(line, fmt.Sprintf("expected 4 columns, found %d", nToken), nil)
			return false
		}
		start, err := strconv.Atoi(gunsafe.BytesToString(s.tokens[1]))
		if err != nil {
			s.err = s.lineError(line, "bad start coordinate", err)
			return false
		}
		end, err := strconv.Atoi(gunsafe.BytesToString(s.tokens[2]))
		if err != nil {
			s.err = s.lineError(line, "bad end coordinate", err)
			return false
		}
		if start < 0 || end < start || end >= interval.PosTypeMax {
			s.err = s.lineError(line, fmt.Sprintf("invalid coordinate pair [%d, %d)", start, end), nil)
			return false
		}
		// The score is always coerced explicitly; a textual score never
		// silently becomes zero.
		score, err := strconv.ParseFloat(gunsafe.BytesToString(s.tokens[3]), 64)
		if err != nil {
			s.err = s.lineError(line, "non-numeric score", err)
			return false
		}
		if end == start {
			continue
		}
		if gunsafe.BytesToString(s.tokens[0]) != s.chrom {
			// Bedgraphs are grouped by chromosome, so one allocation per
			// chromosome suffices.
			s.chrom = string(s.tokens[0])
		}
		rec.Chrom = s.chrom
		rec.Start = interval.PosType(start)
		rec.End = interval.PosType(end)
		rec.Score = score
		return true
	}
	return false
}

func (s *Scanner) lineError(line []byte, msg string, err error) error {
	args := []interface{}{errors.Invalid, fmt.Sprintf("bedgraph: line %d (%q): %s", s.lineno, line, msg)}
	if err != nil {
		args = append(args, err)
	}
	return errors.E(args...)
}

// Line returns the 1-based number of the last line read.
func (s *Scanner) Line() int {
	return s.lineno
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}
