package crm

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRowsScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Row
	}{
		{
			name: "no organizations",
			in:   `[{"id":1,"firstName":"Ada","lastName":"Lovelace","email":"ada@x.com","organizations":[]}]`,
			want: []Row{{Key: "1", Name: "Ada Lovelace", Organization: "", Email: "ada@x.com"}},
		},
		{
			name: "one organization",
			in:   `[{"id":2,"firstName":"Grace","lastName":"Hopper","email":"g@x.com","organizations":[{"id":9,"name":"Navy"}]}]`,
			want: []Row{{Key: "2", Name: "Grace Hopper", Organization: "Navy", Email: "g@x.com"}},
		},
		{
			name: "only first organization shown",
			in:   `[{"id":"c3","firstName":"Alan","lastName":"Turing","email":"a@x.com","organizations":[{"id":"o1","name":"NPL"},{"id":"o2","name":"Bletchley"}]}]`,
			want: []Row{{Key: "c3", Name: "Alan Turing", Organization: "NPL", Email: "a@x.com"}},
		},
		{
			name: "null organizations",
			in:   `[{"id":"c4","firstName":"Edsger","lastName":"Dijkstra","email":"e@x.com","organizations":null}]`,
			want: []Row{{Key: "c4", Name: "Edsger Dijkstra", Organization: "", Email: "e@x.com"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var contacts []Contact
			if err := json.Unmarshal([]byte(tt.in), &contacts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, Rows(contacts)); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRowsPreserveOrder(t *testing.T) {
	contacts := []Contact{
		{ID: "z", FirstName: "Zed", LastName: "Last"},
		{ID: "a", FirstName: "Amy", LastName: "First"},
		{ID: "m", FirstName: "Mia", LastName: "Middle"},
	}
	rows := Rows(contacts)
	got := []ID{rows[0].Key, rows[1].Key, rows[2].Key}
	want := []ID{"z", "a", "m"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order changed (-want +got):\n%s", diff)
	}
}

func TestRowsEmpty(t *testing.T) {
	if rows := Rows(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestRowCells(t *testing.T) {
	r := Row{Name: "Grace Hopper", Organization: "Navy", Email: "g@x.com"}
	if diff := cmp.Diff([]string{"Grace Hopper", "Navy", "g@x.com"}, r.Cells()); diff != "" {
		t.Fatalf("cells mismatch:\n%s", diff)
	}
}

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"abc"`, "abc"},
		{`42`, "42"},
		{`null`, ""},
		{`"7"`, "7"},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if id != tt.want {
			t.Errorf("unmarshal %s = %q, want %q", tt.in, id, tt.want)
		}
	}
	var id ID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Fatal("expected error for object id")
	}
}

func TestFullNameUsesSingleSpace(t *testing.T) {
	c := Contact{FirstName: "Ada", LastName: "Lovelace"}
	if got := c.FullName(); got != "Ada Lovelace" {
		t.Fatalf("FullName = %q", got)
	}
}
