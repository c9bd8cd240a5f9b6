//
// timing.go
//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

// Package timing records protocol phase timings and renders them as
// a profiling report.
package timing

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/pkeot/p2p"
	"github.com/markkurossi/tabulate"
)

// FileSize formats byte counts with decimal units.
type FileSize uint64

func (s FileSize) String() string {
	if s > 1000*1000*1000*1000 {
		return fmt.Sprintf("%dTB", s/(1000*1000*1000*1000))
	} else if s > 1000*1000*1000 {
		return fmt.Sprintf("%dGB", s/(1000*1000*1000))
	} else if s > 1000*1000 {
		return fmt.Sprintf("%dMB", s/(1000*1000))
	} else if s > 1000 {
		return fmt.Sprintf("%dkB", s/1000)
	}
	return fmt.Sprintf("%dB", s)
}

// Timing records timing samples and renders a profiling report.
type Timing struct {
	Start   time.Time
	Samples []*Sample
}

// New creates a new Timing instance.
func New() *Timing {
	return &Timing{
		Start: time.Now(),
	}
}

// Sample adds a timing sample with label and data columns. The sample
// starts where the previous sample ended.
func (t *Timing) Sample(label string, cols []string) *Sample {
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	sample := &Sample{
		Label: label,
		Start: start,
		End:   time.Now(),
		Cols:  cols,
	}
	t.Samples = append(t.Samples, sample)
	return sample
}

// Total returns the duration from start to the end of the last sample.
func (t *Timing) Total() time.Duration {
	if len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].End.Sub(t.Start)
}

// Print prints the profiling report to the writer.
func (t *Timing) Print(w io.Writer, stats p2p.IOStats) {
	if len(t.Samples) == 0 {
		return
	}

	sent := stats.Sent.Load()
	received := stats.Recvd.Load()
	flushed := stats.Flushed.Load()

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)
	tab.Header("Xfer").SetAlign(tabulate.MR)

	total := t.Total()
	for _, sample := range t.Samples {
		row := tab.Row()
		row.Column(sample.Label)

		duration := sample.End.Sub(sample.Start)
		row.Column(duration.String())
		row.Column(percent(duration, total))

		for _, col := range sample.Cols {
			row.Column(col)
		}

		for idx, sub := range sample.Samples {
			row := tab.Row()

			var prefix string
			if idx+1 >= len(sample.Samples) {
				prefix = "\u2570\u2574"
			} else {
				prefix = "\u251C\u2574"
			}
			row.Column(prefix + sub.Label).SetFormat(tabulate.FmtItalic)

			d := sub.Duration()
			row.Column(d.String()).SetFormat(tabulate.FmtItalic)
			row.Column(percent(d, duration)).SetFormat(tabulate.FmtItalic)
		}
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)
	row.Column(FileSize(sent + received).String()).SetFormat(tabulate.FmtBold)

	xfer := time.Duration(sent + received)

	row = tab.Row()
	row.Column("\u251C\u2574Sent").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column(percent(time.Duration(sent), xfer)).
		SetFormat(tabulate.FmtItalic)
	row.Column(FileSize(sent).String()).SetFormat(tabulate.FmtItalic)

	row = tab.Row()
	row.Column("\u251C\u2574Rcvd").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column(percent(time.Duration(received), xfer)).
		SetFormat(tabulate.FmtItalic)
	row.Column(FileSize(received).String()).SetFormat(tabulate.FmtItalic)

	row = tab.Row()
	row.Column("\u2570\u2574Flcd").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column("")
	row.Column(fmt.Sprintf("%v", flushed)).SetFormat(tabulate.FmtItalic)

	tab.Print(w)
}

func percent(part, whole time.Duration) string {
	if whole == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(whole)*100)
}

// Sample contains information about one timing sample.
type Sample struct {
	Label   string
	Start   time.Time
	End     time.Time
	Cols    []string
	Samples []*Sample
}

// Duration returns the sample duration.
func (s *Sample) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// SubSample adds a sub-sample for a timing sample.
func (s *Sample) SubSample(label string, end time.Time) {
	start := s.Start
	if len(s.Samples) > 0 {
		start = s.Samples[len(s.Samples)-1].End
	}
	s.Samples = append(s.Samples, &Sample{
		Label: label,
		Start: start,
		End:   end,
	})
}
