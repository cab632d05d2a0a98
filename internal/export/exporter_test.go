package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlist/internal/task"
	"netlist/internal/view"
)

var base = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func sample() view.Projection {
	tasks := []task.Task{
		{ID: "t2", Text: "write, report", Priority: task.PriorityLow, CreatedAt: base.Add(time.Minute)},
		{ID: "t1", Text: "buy milk", Priority: task.PriorityHigh, Completed: true, CreatedAt: base},
	}
	return view.Project(tasks, view.FilterAll, view.SortPriority)
}

func TestExport_CSV(t *testing.T) {
	out, err := New().Export(sample(), "csv")
	require.NoError(t, err)

	expected := "id,text,priority,completed,created_at\n" +
		"t1,buy milk,high,true,2024-06-01T08:00:00.000Z\n" +
		"t2,\"write, report\",low,false,2024-06-01T08:01:00.000Z\n"
	assert.Equal(t, expected, string(out))
}

func TestExport_JSON(t *testing.T) {
	out, err := New().Export(sample(), "JSON")
	require.NoError(t, err)

	var got struct {
		View  view.Selection `json:"view"`
		Tasks []task.Task    `json:"tasks"`
		Stats view.Stats     `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, view.FilterAll, got.View.Filter)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "t1", got.Tasks[0].ID)
	assert.Equal(t, 50, got.Stats.CompletionRate)
}

func TestExport_PDF(t *testing.T) {
	e := New()
	e.Now = func() time.Time { return base }

	out, err := e.Export(sample(), "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	empty, err := e.Export(view.Project(nil, view.FilterCompleted, view.SortPriority), "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := New().Export(sample(), "xml")
	assert.EqualError(t, err, "unknown format xml (supported: json, csv, pdf)")
}

func TestExport_PDFRefusesTextOutsideCoreFont(t *testing.T) {
	p := view.Project([]task.Task{
		{ID: "1718000000000", Text: "写报告", Priority: task.PriorityHigh, CreatedAt: base},
	}, view.FilterAll, view.SortPriority)

	_, err := New().Export(p, "pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedText))
	assert.Contains(t, err.Error(), "1718000000000")
}

func TestExport_PDFCoreFontAcceptsCP1252(t *testing.T) {
	p := view.Project([]task.Task{
		{ID: "t1", Text: "café – 5€", Priority: task.PriorityHigh, CreatedAt: base},
	}, view.FilterAll, view.SortPriority)

	out, err := New().Export(p, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExport_PDFWithUTF8Font(t *testing.T) {
	p := view.Project([]task.Task{
		{ID: "t1", Text: "Привет, мир", Priority: task.PriorityHigh, CreatedAt: base},
		{ID: "t2", Text: "Καλημέρα", Priority: task.PriorityLow, CreatedAt: base},
	}, view.FilterAll, view.SortPriority)

	e := New()
	e.Now = func() time.Time { return base }
	e.FontPath = "testdata/DejaVuSansCondensed.ttf"

	out, err := e.Export(p, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Encoding /Identity-H", "task lines use the embedded UTF-8 font")
}

func TestExport_PDFMissingFont(t *testing.T) {
	e := New()
	e.FontPath = "testdata/missing.ttf"

	_, err := e.Export(sample(), "pdf")
	assert.ErrorContains(t, err, "read font")
}

func TestFirstNonCP1252(t *testing.T) {
	tests := []struct {
		in   string
		want rune
		bad  bool
	}{
		{"plain", 0, false},
		{"naïve “quotes” €", 0, false},
		{"line\nbreak", 0, false},
		{"ok 写", '写', true},
		{"Ω", 'Ω', true},
	}
	for _, tt := range tests {
		r, bad := firstNonCP1252(tt.in)
		if bad != tt.bad || r != tt.want {
			t.Errorf("firstNonCP1252(%q) = %q, %v; want %q, %v", tt.in, r, bad, tt.want, tt.bad)
		}
	}
}
