package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOrdersAttributesThenCategories(t *testing.T) {
	ds := &Dataset{
		Attributes: map[string]any{"income": 5000, "currency": "USD"},
		Categories: []Category{
			{Name: "expenses", Fields: []string{"category", "amount"}, Records: []Record{{"category": "Rent", "amount": 1500, "note": "a&b"}}},
			{Name: "goals"},
		},
	}

	got, err := ds.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, `{"currency": "USD", "income": 5000, "expenses": [{"category": "Rent", "amount": 1500, "note": "a&b"}], "goals": []}`, got)
}

func TestSectionsKeepDeclaredOrder(t *testing.T) {
	sections, err := SupplyChain().Sections()
	require.NoError(t, err)

	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	if diff := cmp.Diff([]string{"Products", "Suppliers", "Orders"}, titles); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, sections[1].JSON, `{"id": 2, "name": "Supplier B", "lead_time": 3, "reliability": 0.56}`)
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"bank_accounts":   "Bank Accounts",
		"products":        "Products",
		"financial-goals": "Financial Goals",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Title(in), in)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Finance()
	cp := orig.Clone()
	cp.Categories[0].Records[0]["amount"] = 1
	cp.Attributes["income"] = 1

	assert.Equal(t, 1500, orig.Categories[0].Records[0]["amount"])
	assert.Equal(t, 5000, orig.Attributes["income"])
}

func TestBuiltinsAreValid(t *testing.T) {
	for _, ds := range []*Dataset{Finance(), SupplyChain()} {
		require.NoError(t, ds.Validate(), ds.Name)
	}
	assert.Equal(t, 15, Finance().Len())
	assert.Equal(t, 21, SupplyChain().Len())

	expenses, ok := Finance().Category("expenses")
	require.True(t, ok)
	assert.Len(t, expenses.Records, 6)
	_, ok = Finance().Category("orders")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		check   func(t *testing.T, ds *Dataset)
	}{
		{
			name: "yaml document",
			doc: `
name: pantry
attributes:
  budget: 120
categories:
  - name: items
    records:
      - {name: Flour, qty: 2}
      - {name: Salt, qty: 1}
`,
			check: func(t *testing.T, ds *Dataset) {
				assert.Equal(t, "pantry", ds.Name)
				assert.Equal(t, 2, ds.Len())
				assert.Equal(t, 120, ds.Attributes["budget"])
			},
		},
		{
			name: "json document",
			doc:  `{"categories": [{"name": "orders", "records": [{"id": 1, "due_date": "2023-06-30"}]}]}`,
			check: func(t *testing.T, ds *Dataset) {
				orders, ok := ds.Category("orders")
				require.True(t, ok)
				assert.Equal(t, "2023-06-30", orders.Records[0]["due_date"])
				assert.Equal(t, []string{"id", "due_date"}, orders.Fields)
			},
		},
		{
			name:    "nested record value",
			doc:     "categories:\n  - name: orders\n    records:\n      - {id: 1, lines: [1, 2]}\n",
			wantErr: true,
		},
		{
			name:    "unnamed category",
			doc:     "categories:\n  - records:\n      - {id: 1}\n",
			wantErr: true,
		},
		{
			name:    "empty document",
			doc:     "name: nothing\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDataset)
				return
			}
			require.NoError(t, err)
			tt.check(t, ds)
		})
	}
}

func TestLoadDefaultsNameToFileStem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: bins\n    records:\n      - {id: 7}\n"), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warehouse", ds.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
