package dataset

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/lvhmm/matrix"
)

// SampleLength pairs a sample's label with its number of time steps.
type SampleLength struct {
	Label  int
	Length int
}

// Stats is a summary of a dataset for reporting.
type Stats struct {
	Name          string
	Info          string
	NumDimensions int
	NumSamples    int
	Classes       []ClassTracker
	Ranges        []matrix.MinMax
	Lengths       []SampleLength
}

// Stats collects the dataset summary.
func (ds *Dataset) Stats() Stats {
	lengths := make([]SampleLength, len(ds.samples))
	for i, s := range ds.samples {
		lengths[i] = SampleLength{Label: s.Label, Length: s.Length()}
	}

	return Stats{
		Name:          ds.name,
		Info:          ds.info,
		NumDimensions: ds.numDimensions,
		NumSamples:    len(ds.samples),
		Classes:       ds.ClassTracker(),
		Ranges:        ds.Ranges(),
		Lengths:       lengths,
	}
}

// WriteTo renders the summary as aligned text.
func (s Stats) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "DatasetName:\t%s\n", s.Name)
	fmt.Fprintf(tw, "DatasetInfo:\t%s\n", s.Info)
	fmt.Fprintf(tw, "Number of Dimensions:\t%d\n", s.NumDimensions)
	fmt.Fprintf(tw, "Number of Samples:\t%d\n", s.NumSamples)
	fmt.Fprintf(tw, "Number of Classes:\t%d\n", len(s.Classes))
	fmt.Fprintln(tw, "ClassStats:")
	for _, c := range s.Classes {
		fmt.Fprintf(tw, "  ClassLabel:\t%d\tSamples:\t%d\tName:\t%s\n", c.Label, c.Count, c.Name)
	}
	fmt.Fprintln(tw, "Dataset Ranges:")
	for j, r := range s.Ranges {
		fmt.Fprintf(tw, "  [%d]\tMin:\t%g\tMax:\t%g\n", j+1, r.Min, r.Max)
	}
	fmt.Fprintln(tw, "Timeseries Lengths:")
	for _, l := range s.Lengths {
		fmt.Fprintf(tw, "  ClassLabel:\t%d\tLength:\t%d\n", l.Label, l.Length)
	}
	if err := tw.Flush(); err != nil {
		return cw.n, err
	}

	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}

	return n, err
}
