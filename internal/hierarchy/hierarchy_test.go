package hierarchy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/munibudget/internal/model"
	"github.com/civicledger/munibudget/internal/report"
)

func records(codes ...string) []model.AccountRecord {
	out := make([]model.AccountRecord, len(codes))
	for i, c := range codes {
		out[i] = model.AccountRecord{Code: c, Budget: decimal.NewFromInt(int64(100 * (i + 1)))}
	}
	return out
}

func TestBuild_ParentChild(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.1", "410.2"), r)

	assert.True(t, r.Empty())
	require.Len(t, f.Roots(), 1)

	root := f.Roots()[0]
	assert.Equal(t, "410", root.Code.String())
	require.Len(t, root.Children, 2)
	assert.Equal(t, "410.1", root.Children[0].Code.String())
	assert.Equal(t, "410.2", root.Children[1].Code.String())
	assert.Equal(t, "410", root.Children[0].Parent)
}

func TestBuild_ChildOrderFollowsInput(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.9", "410.2", "410.5"), r)

	root := f.Roots()[0]
	got := make([]string, len(root.Children))
	for i, c := range root.Children {
		got[i] = c.Code.String()
	}
	assert.Equal(t, []string{"410.9", "410.2", "410.5"}, got)
}

func TestBuild_DuplicateCodeDropsSecond(t *testing.T) {
	recs := records("410", "410")
	recs[0].Description = "first"
	recs[1].Description = "second"

	r := report.New(nil)
	f := Build(recs, r)

	require.Len(t, r.Errors(), 1)
	assert.Equal(t, report.KindDuplicateCode, r.Errors()[0].Kind)
	assert.Equal(t, 1, f.Len())

	node, ok := f.Lookup("410")
	require.True(t, ok)
	assert.Equal(t, "first", node.Record.Description)
}

func TestBuild_DanglingParentPromotedToRoot(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "500.1"), r)

	require.Len(t, r.Warnings(), 1)
	assert.Equal(t, report.KindDanglingParent, r.Warnings()[0].Kind)

	require.Len(t, f.Roots(), 2)
	assert.Equal(t, "500.1", f.Roots()[1].Code.String())
	assert.Empty(t, f.Roots()[1].Parent)
}

func TestBuild_MalformedCodeSkipped(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410..1"), r)

	require.Len(t, r.Errors(), 1)
	assert.Equal(t, report.KindMalformedCode, r.Errors()[0].Kind)
	assert.Equal(t, 1, f.Len())
}

func TestAll_DepthFirstDocumentOrder(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.1", "410.1.1", "410.2", "500"), r)

	var got []string
	for n := range f.All() {
		got = append(got, n.Code.String())
	}
	assert.Equal(t, []string{"410", "410.1", "410.1.1", "410.2", "500"}, got)
}

func TestAll_Restartable(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.1"), r)

	seq := f.All()
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second)
}

func TestAll_EarlyBreak(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.1", "410.2"), r)

	count := 0
	for range f.All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestDescendants(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.1", "410.1.1", "500"), r)

	root, ok := f.Lookup("410")
	require.True(t, ok)

	var got []string
	for n := range Descendants(root) {
		got = append(got, n.Code.String())
	}
	assert.Equal(t, []string{"410", "410.1", "410.1.1"}, got)
}

func TestRecords_RoundTripsOrder(t *testing.T) {
	r := report.New(nil)
	f := Build(records("410", "410.1", "500"), r)

	recs := f.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "410", recs[0].Code)
	assert.Equal(t, "410.1", recs[1].Code)
	assert.Equal(t, "500", recs[2].Code)
}
