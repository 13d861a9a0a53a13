package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvhmm/matrix"
)

// Text format markers.
const (
	FileHeader        = "GRT_LABELLED_TIME_SERIES_CLASSIFICATION_DATA_FILE_V1.0"
	keyDatasetName    = "DatasetName:"
	keyInfoText       = "InfoText:"
	keyNumDimensions  = "NumDimensions:"
	keyTotalExamples  = "TotalNumTrainingExamples:"
	keyNumClasses     = "NumberOfClasses:"
	keyClassCounters  = "ClassIDsAndCounters:"
	keyExternalRanges = "UseExternalRanges:"
	keyTrainingData   = "LabelledTimeSeriesTrainingData:"
	keySampleHeader   = "************TIME_SERIES************"
	keyClassID        = "ClassID:"
	keyLength         = "TimeSeriesLength:"
	keySampleData     = "TimeSeriesData:"
)

// lineReader tracks line numbers for error messages.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func (lr *lineReader) next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("line %d: unexpected end of input: %w", lr.line+1, ErrFormat)
	}
	lr.line++

	return strings.TrimRight(lr.sc.Text(), "\r"), nil
}

// field reads the next line, requires it to start with key and returns the
// trimmed remainder.
func (lr *lineReader) field(key string) (string, error) {
	s, err := lr.next()
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, key) {
		return "", fmt.Errorf("line %d: expected %q: %w", lr.line, key, ErrFormat)
	}

	return strings.TrimSpace(strings.TrimPrefix(s, key)), nil
}

func (lr *lineReader) intField(key string) (int, error) {
	s, err := lr.field(key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s %q: %w", lr.line, key, s, ErrFormat)
	}

	return v, nil
}

// parseFloats parses exactly n whitespace-separated numbers.
func parseFloats(s string, n, line int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, fmt.Errorf("line %d: want %d values, got %d: %w", line, n, len(fields), ErrFormat)
	}
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		v, err := strconv.ParseFloat(fields[j], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value %q: %w", line, fields[j], ErrFormat)
		}
		out[j] = v
	}

	return out, nil
}

// Load decodes a dataset in the GRT labelled time-series text format.
// Samples labelled 0 are accepted and turn AllowNullClass on. The class
// counters in the header must agree with the samples.
//
// Errors:
//   - ErrFormat (wrapped with the line number) for any structural problem.
//   - I/O errors from r.
func Load(r io.Reader) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lr := &lineReader{sc: sc}

	head, err := lr.next()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(head) != FileHeader {
		return nil, fmt.Errorf("line 1: missing file header: %w", ErrFormat)
	}
	name, err := lr.field(keyDatasetName)
	if err != nil {
		return nil, err
	}
	info, err := lr.field(keyInfoText)
	if err != nil {
		return nil, err
	}
	d, err := lr.intField(keyNumDimensions)
	if err != nil {
		return nil, err
	}
	ds, err := New(d, name, info)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w: %w", lr.line, ErrFormat, err)
	}
	total, err := lr.intField(keyTotalExamples)
	if err != nil {
		return nil, err
	}
	numClasses, err := lr.intField(keyNumClasses)
	if err != nil {
		return nil, err
	}
	if total < 0 || numClasses < 0 {
		return nil, fmt.Errorf("line %d: negative count: %w", lr.line, ErrFormat)
	}
	if _, err = lr.field(keyClassCounters); err != nil {
		return nil, err
	}
	header := make([]ClassTracker, numClasses)
	for i := 0; i < numClasses; i++ {
		s, err := lr.next()
		if err != nil {
			return nil, err
		}
		f := strings.Fields(s)
		if len(f) < 2 {
			return nil, fmt.Errorf("line %d: class counter: %w", lr.line, ErrFormat)
		}
		label, err1 := strconv.Atoi(f[0])
		count, err2 := strconv.Atoi(f[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("line %d: class counter: %w", lr.line, ErrFormat)
		}
		header[i] = ClassTracker{Label: label, Count: count, Name: DefaultName}
		if len(f) > 2 {
			header[i].Name = strings.Join(f[2:], " ")
		}
	}

	ext, err := lr.field(keyExternalRanges)
	if err != nil {
		return nil, err
	}
	if f := strings.Fields(ext); len(f) == 0 || f[0] != "0" {
		vals, err := parseFloats(strings.Join(f[min(1, len(f)):], " "), 2*d, lr.line)
		if err != nil {
			return nil, err
		}
		ranges := make([]matrix.MinMax, d)
		for j := range ranges {
			ranges[j] = matrix.MinMax{Min: vals[2*j], Max: vals[2*j+1]}
		}
		ds.externalRanges = ranges
	}

	if _, err = lr.field(keyTrainingData); err != nil {
		return nil, err
	}
	for x := 0; x < total; x++ {
		if _, err = lr.field(keySampleHeader); err != nil {
			return nil, err
		}
		label, err := lr.intField(keyClassID)
		if err != nil {
			return nil, err
		}
		length, err := lr.intField(keyLength)
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, fmt.Errorf("line %d: negative length: %w", lr.line, ErrFormat)
		}
		if _, err = lr.field(keySampleData); err != nil {
			return nil, err
		}
		data, _ := matrix.NewEmpty(d)
		for i := 0; i < length; i++ {
			s, err := lr.next()
			if err != nil {
				return nil, err
			}
			row, err := parseFloats(s, d, lr.line)
			if err != nil {
				return nil, err
			}
			if err = data.AppendRow(row); err != nil {
				return nil, fmt.Errorf("line %d: %w: %w", lr.line, ErrFormat, err)
			}
		}
		if label == 0 {
			ds.AllowNullClass = true
		}
		ds.append(label, data)
	}

	if len(header) != len(ds.tracker) {
		return nil, fmt.Errorf("header lists %d classes, samples have %d: %w", len(header), len(ds.tracker), ErrFormat)
	}
	for _, h := range header {
		found := false
		for i := range ds.tracker {
			if ds.tracker[i].Label == h.Label {
				if ds.tracker[i].Count != h.Count {
					return nil, fmt.Errorf("class %d: header count %d, samples %d: %w",
						h.Label, h.Count, ds.tracker[i].Count, ErrFormat)
				}
				ds.tracker[i].Name = h.Name
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("class %d has no samples: %w", h.Label, ErrFormat)
		}
	}

	return ds, nil
}

// Save encodes ds in the GRT labelled time-series text format.
func (ds *Dataset) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, FileHeader)
	fmt.Fprintf(bw, "%s %s\n", keyDatasetName, ds.name)
	fmt.Fprintf(bw, "%s %s\n", keyInfoText, ds.info)
	fmt.Fprintf(bw, "%s %d\n", keyNumDimensions, ds.numDimensions)
	fmt.Fprintf(bw, "%s %d\n", keyTotalExamples, len(ds.samples))
	fmt.Fprintf(bw, "%s %d\n", keyNumClasses, len(ds.tracker))
	fmt.Fprintln(bw, keyClassCounters)
	for _, t := range ds.tracker {
		if t.Name != "" && t.Name != DefaultName {
			fmt.Fprintf(bw, "%d\t%d\t%s\n", t.Label, t.Count, t.Name)
			continue
		}
		fmt.Fprintf(bw, "%d\t%d\n", t.Label, t.Count)
	}
	if ds.externalRanges == nil {
		fmt.Fprintf(bw, "%s 0\n", keyExternalRanges)
	} else {
		fmt.Fprintf(bw, "%s 1", keyExternalRanges)
		for _, r := range ds.externalRanges {
			fmt.Fprintf(bw, " %s %s", formatFloat(r.Min), formatFloat(r.Max))
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, keyTrainingData)

	var i, j int
	var v float64
	for _, s := range ds.samples {
		fmt.Fprintln(bw, keySampleHeader)
		fmt.Fprintf(bw, "%s %d\n", keyClassID, s.Label)
		fmt.Fprintf(bw, "%s %d\n", keyLength, s.Length())
		fmt.Fprintln(bw, keySampleData)
		for i = 0; i < s.Length(); i++ {
			for j = 0; j < ds.numDimensions; j++ {
				if j > 0 {
					_ = bw.WriteByte(' ')
				}
				v, _ = s.Data.At(i, j)
				_, _ = bw.WriteString(formatFloat(v))
			}
			_ = bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
