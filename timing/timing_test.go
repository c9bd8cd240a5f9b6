//
// timing_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package timing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/markkurossi/pkeot/p2p"
)

func TestFileSize(t *testing.T) {
	tests := []struct {
		size     FileSize
		expected string
	}{
		{0, "0B"},
		{1000, "1000B"},
		{1001, "1kB"},
		{2500000, "2MB"},
		{3000000001, "3GB"},
		{4000000000001, "4TB"},
	}
	for _, test := range tests {
		if got := test.size.String(); got != test.expected {
			t.Errorf("FileSize(%d)=%s, expected %s",
				uint64(test.size), got, test.expected)
		}
	}
}

func TestTiming(t *testing.T) {
	timing := New()
	if timing.Total() != 0 {
		t.Errorf("empty timing has total %v", timing.Total())
	}

	generated := time.Now()
	sampled := generated.Add(time.Millisecond)
	keys := timing.Sample("Keys", []string{"1kB"})
	keys.SubSample("Generate", generated)
	keys.SubSample("Sample", sampled)
	timing.Sample("Encrypt", nil)
	timing.Sample("Decrypt", nil)

	if len(timing.Samples) != 3 {
		t.Fatalf("got %d samples, expected 3", len(timing.Samples))
	}
	for i := 1; i < len(timing.Samples); i++ {
		if !timing.Samples[i].Start.Equal(timing.Samples[i-1].End) {
			t.Errorf("sample %d does not start where %d ends", i, i-1)
		}
	}
	if len(keys.Samples) != 2 {
		t.Fatalf("got %d sub-samples, expected 2", len(keys.Samples))
	}
	if !keys.Samples[0].Start.Equal(keys.Start) {
		t.Errorf("first sub-sample does not start with its sample")
	}
	if keys.Samples[1].Duration() != time.Millisecond {
		t.Errorf("sub-sample duration %v, expected %v",
			keys.Samples[1].Duration(), time.Millisecond)
	}

	stats := p2p.NewIOStats()
	stats.Sent.Add(2000)
	stats.Recvd.Add(3000)

	var buf bytes.Buffer
	timing.Print(&buf, stats)

	out := buf.String()
	for _, label := range []string{"Keys", "Encrypt", "Decrypt", "Total",
		"5kB"} {
		if !strings.Contains(out, label) {
			t.Errorf("report does not contain %q:\n%s", label, out)
		}
	}
}

func TestPrintEmpty(t *testing.T) {
	var buf bytes.Buffer
	New().Print(&buf, p2p.NewIOStats())
	if buf.Len() != 0 {
		t.Errorf("empty timing printed %q", buf.String())
	}
}
