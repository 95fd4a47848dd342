package roads

import (
	"fmt"
	"testing"
)

func buildIndex(names ...string) *Index {
	features := make([]RoadFeature, 0, len(names))
	for _, name := range names {
		features = append(features, NewRoadFeature(name, nil, nil))
	}
	return NewIndex(features, DefaultSpeedTable())
}

func TestSuggest(t *testing.T) {
	idx := buildIndex(
		"Session Road",
		"Magsaysay Avenue",
		"Harrison Road",
		"Kennon Road",
		"Asin Road",
		"Naguilian Road",
		"Marcos Highway",
	)

	testCases := []struct {
		name   string
		prefix string
		want   []string
	}{
		{
			name:   "empty prefix yields nothing",
			prefix: "",
			want:   nil,
		},
		{
			name:   "case-insensitive substring",
			prefix: "kennon",
			want:   []string{"Kennon Road"},
		},
		{
			name:   "substring anywhere in the name",
			prefix: "say",
			want:   []string{"Magsaysay Avenue"},
		},
		{
			name:   "index order preserved, capped at five",
			prefix: "road",
			want:   []string{"Session Road", "Harrison Road", "Kennon Road", "Asin Road", "Naguilian Road"},
		},
		{
			name:   "no match",
			prefix: "loakan",
			want:   []string{},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Suggest(tt.prefix)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d suggestions, want %d", len(got), len(tt.want))
			}
			for i, f := range got {
				if f.GetName() != tt.want[i] {
					t.Errorf("suggestion %d: got %q, want %q", i, f.GetName(), tt.want[i])
				}
			}
		})
	}
}

func TestSuggestCapIsFive(t *testing.T) {
	names := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		names = append(names, fmt.Sprintf("Road %d", i))
	}
	idx := buildIndex(names...)

	got := idx.Suggest("road")
	if len(got) != 5 {
		t.Fatalf("got %d suggestions, want 5", len(got))
	}
	for i, f := range got {
		want := fmt.Sprintf("Road %d", i)
		if f.GetName() != want {
			t.Errorf("suggestion %d: got %q, want %q", i, f.GetName(), want)
		}
	}
}
