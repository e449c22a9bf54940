package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dombatch "github.com/kailas-cloud/tablefinder/internal/domain/batch"
	domrest "github.com/kailas-cloud/tablefinder/internal/domain/restaurant"
	"github.com/kailas-cloud/tablefinder/internal/usecase/seed"
)

type recordingWriter struct {
	mu  sync.Mutex
	ids map[int64]int
}

func (w *recordingWriter) Put(_ context.Context, start int, rs []domrest.Restaurant) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ids == nil {
		w.ids = make(map[int64]int)
	}
	for i := range rs {
		w.ids[rs[i].ID] = start + i
	}
	return nil
}

func TestLoad_FromCSV(t *testing.T) {
	data := "Restaurant ID,Restaurant Name,Longitude,Latitude,Cuisines\n" +
		"11,Truffles,77.6143,12.9719,\"American, Burger, Cafe\"\n" +
		"12,Broken,77.6,,Cafe\n" +
		"13,Meghana Foods,77.6083,12.9756,\"Biryani, Andhra\"\n"

	w := &recordingWriter{}
	summary, err := load(context.Background(), strings.NewReader(data), w, seed.Config{BatchSize: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Loaded)
	require.Len(t, summary.Rejected, 1)
	assert.Equal(t, 3, summary.Rejected[0].Line())
	assert.Equal(t, map[int64]int{11: 0, 13: 1}, w.ids)
}

func TestLoad_BadHeader(t *testing.T) {
	_, err := load(context.Background(), strings.NewReader("id,name\n1,x\n"), &recordingWriter{}, seed.Config{})
	require.Error(t, err)
}

func TestPrintSummary(t *testing.T) {
	var s dombatch.Summary
	s.Add(dombatch.NewOK(2, 1))
	for i := 0; i < maxReportedRejects+3; i++ {
		s.Add(dombatch.NewRejected(i+3, 0, errors.New("bad")))
	}
	s.Batches = 1

	var buf bytes.Buffer
	printSummary(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "rows: 24  loaded: 1  failed: 0  rejected: 23  batches: 1")
	assert.Contains(t, out, "line 3: bad")
	assert.Contains(t, out, "... 3 more")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "tablefinder-seed dev")
}
