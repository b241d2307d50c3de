package message

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pwitab/iec62056-21/internal/util"
)

// Data parsing patterns, compiled once.
var (
	justValueRegex = regexp.MustCompile(`^\((.*)\)`)
	dataSetRegex   = regexp.MustCompile(`^(.+)\((.*)\)`)
	valueUnitRegex = regexp.MustCompile(`^(.*)\*(.*)`)
)

// DataSet is the smallest unit of a response: an address and a value with an
// optional unit. Empty strings mark absent fields.
type DataSet struct {
	Address string
	Value   string
	Unit    string
}

// Representation returns the data set in one of its three protocol forms:
// address(value*unit), address(value) or (value).
func (ds DataSet) Representation() string {
	switch {
	case ds.Address != "" && ds.Unit != "":
		return fmt.Sprintf("%s(%s*%s)", ds.Address, ds.Value, ds.Unit)
	case ds.Address != "":
		return fmt.Sprintf("%s(%s)", ds.Address, ds.Value)
	default:
		return fmt.Sprintf("(%s)", ds.Value)
	}
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (ds DataSet) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(ds.Representation())
}

// ParseDataSet parses a single data set in any of its three forms.
func ParseDataSet(data string) (DataSet, error) {
	if m := justValueRegex.FindStringSubmatch(data); m != nil {
		return DataSet{Value: m[1]}, nil
	}

	m := dataSetRegex.FindStringSubmatch(data)
	if m == nil {
		return DataSet{}, fmt.Errorf("%w: no address and value found in %q", ErrParse, data)
	}
	address, body := m[1], m[2]

	if vu := valueUnitRegex.FindStringSubmatch(body); vu != nil {
		return DataSet{Address: address, Value: vu[1], Unit: vu[2]}, nil
	}

	return DataSet{Address: address, Value: body}, nil
}

// DataLine is an ordered sequence of data sets.
type DataLine struct {
	DataSets []DataSet
}

// NewDataLine builds a data line over a copy of sets.
func NewDataLine(sets ...DataSet) DataLine {
	return DataLine{DataSets: util.CloneSlice(sets, 0)}
}

// Representation concatenates the contained data sets in order.
func (dl DataLine) Representation() string {
	var sb strings.Builder
	for _, ds := range dl.DataSets {
		sb.WriteString(ds.Representation())
	}

	return sb.String()
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (dl DataLine) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(dl.Representation())
}

// ParseDataLine splits data after each ')' terminator and parses every
// segment as a data set. A ')' cannot legally occur inside a value, so the
// split is unambiguous.
func ParseDataLine(data string) (DataLine, error) {
	count := strings.Count(data, ")")
	sets := make([]DataSet, 0, count)

	rest := data
	for i := 0; i < count; i++ {
		end := strings.IndexByte(rest, ')') + 1
		ds, err := ParseDataSet(rest[:end])
		if err != nil {
			return DataLine{}, err
		}
		sets = append(sets, ds)
		rest = rest[end:]
	}

	return DataLine{DataSets: sets}, nil
}

// DataBlock is an ordered sequence of data lines.
type DataBlock struct {
	DataLines []DataLine
}

// NewDataBlock builds a data block over a copy of lines.
func NewDataBlock(lines ...DataLine) DataBlock {
	return DataBlock{DataLines: util.CloneSlice(lines, 0)}
}

// Representation terminates every line, including the last, with CR LF.
func (db DataBlock) Representation() string {
	var sb strings.Builder
	for _, dl := range db.DataLines {
		sb.WriteString(dl.Representation())
		sb.WriteString(LineEnd)
	}

	return sb.String()
}

// MarshalBinary returns the latin-1 encoding of the representation.
func (db DataBlock) MarshalBinary() ([]byte, error) {
	return EncodeLatin1(db.Representation())
}

// ParseDataBlock splits data on line boundaries and parses each line.
func ParseDataBlock(data string) (DataBlock, error) {
	lines := splitLines(data)
	dataLines := make([]DataLine, 0, len(lines))
	for _, line := range lines {
		dl, err := ParseDataLine(line)
		if err != nil {
			return DataBlock{}, err
		}
		dataLines = append(dataLines, dl)
	}

	return DataBlock{DataLines: dataLines}, nil
}

// splitLines splits on CR LF or bare LF, dropping the terminators. A trailing
// terminator does not produce an empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
