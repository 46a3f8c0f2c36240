package nickname

import (
	"reflect"
	"strings"
	"testing"
)

func mustBuild(t *testing.T, lines ...[]string) *Index {
	t.Helper()
	b := NewBuilder()
	for _, line := range lines {
		b.AddTokens(line...)
	}
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestBuildMergesOverlappingLines(t *testing.T) {
	idx := mustBuild(t,
		[]string{"DAVE", "DAVID", "DAVEY"},
		[]string{"BOB", "BOBBY", "ROB"},
		[]string{"MATT", "MATTHEW", "ROB"},
	)
	if idx.Len() != 2 {
		t.Fatalf("want 2 clusters, got %d", idx.Len())
	}
	want0 := []string{"DAVE", "DAVEY", "DAVID"}
	if got := idx.Names(0); !reflect.DeepEqual(got, want0) {
		t.Errorf("cluster 0 = %v, want %v", got, want0)
	}
	want1 := []string{"BOB", "BOBBY", "MATT", "MATTHEW", "ROB"}
	if got := idx.Names(1); !reflect.DeepEqual(got, want1) {
		t.Errorf("cluster 1 = %v, want %v", got, want1)
	}
}

func TestBuildTransitivity(t *testing.T) {
	// A,B and B,C never co-occur with each other directly but must land
	// in one cluster through B
	idx := mustBuild(t,
		[]string{"ABE", "ABRAHAM"},
		[]string{"ABRAHAM", "BRAM"},
	)
	if idx.Len() != 1 {
		t.Fatalf("want 1 cluster, got %d", idx.Len())
	}
	iAbe, _ := idx.IndexOf("ABE")
	iBram, _ := idx.IndexOf("BRAM")
	if iAbe != iBram {
		t.Errorf("ABE in cluster %d, BRAM in cluster %d", iAbe, iBram)
	}
}

func TestBuildPartition(t *testing.T) {
	idx := mustBuild(t,
		[]string{"JOHN", "JON", "JOHNNY"},
		[]string{"JON", "JONATHAN"},
		[]string{"KATE", "KATIE"},
		[]string{"WILL", "BILL", "WILLIAM"},
		[]string{"BILLY", "BILL"},
	)
	seen := map[string]int{}
	for i := 0; i < idx.Len(); i++ {
		for _, name := range idx.Names(i) {
			if prev, dup := seen[name]; dup {
				t.Errorf("name %s in clusters %d and %d", name, prev, i)
			}
			seen[name] = i
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	first := mustBuild(t,
		[]string{"PEG", "PEGGY", "MARGARET"},
		[]string{"MEG", "MARGARET"},
		[]string{"TED", "THEODORE"},
	)

	again := NewBuilder()
	for i := 0; i < first.Len(); i++ {
		again.AddTokens(first.Names(i)...)
	}
	second, err := again.Build()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if second.Len() != first.Len() {
		t.Fatalf("rebuild changed cluster count: %d != %d", second.Len(), first.Len())
	}
	for i := 0; i < first.Len(); i++ {
		if !reflect.DeepEqual(first.Names(i), second.Names(i)) {
			t.Errorf("cluster %d changed: %v != %v", i, first.Names(i), second.Names(i))
		}
	}
}

func TestBuildOrderMatchesFirstAppearance(t *testing.T) {
	// the merged BOB group starts at line 0, so it must take cluster id 0
	// even though its last member arrives later
	idx := mustBuild(t,
		[]string{"BOB", "BOBBY"},
		[]string{"DAVE", "DAVID"},
		[]string{"ROB", "BOB"},
	)
	if idx.Len() != 2 {
		t.Fatalf("want 2 clusters, got %d", idx.Len())
	}
	if i, _ := idx.IndexOf("ROB"); i != 0 {
		t.Errorf("ROB cluster = %d, want 0", i)
	}
	if i, _ := idx.IndexOf("DAVE"); i != 1 {
		t.Errorf("DAVE cluster = %d, want 1", i)
	}
}

func TestAddMessyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"commas and slashes", "Dave, David / Davey", []string{"DAVE", "DAVID", "DAVEY"}},
		{"parens stripped", "Peg (Peggy) Margaret", []string{"PEG", "PEGGY", "MARGARET"}},
		{"lowercase tokens dropped", "Bob aka bobby Rob", []string{"BOB", "ROB"}},
		{"apostrophes survive", "O'Neil", []string{"O'NEIL"}},
		{"blank", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.AddMessyLine(tt.line)
			if tt.want == nil {
				if len(b.lines) != 0 {
					t.Fatalf("want no line, got %v", b.lines)
				}
				return
			}
			if len(b.lines) != 1 || !reflect.DeepEqual(b.lines[0], tt.want) {
				t.Fatalf("line = %v, want %v", b.lines, tt.want)
			}
		})
	}
}

func TestReadMessy(t *testing.T) {
	src := "Bob, Bobby / Rob\n\nMatt Matthew Rob\nDave David\n"
	b := NewBuilder()
	if err := b.ReadMessy(strings.NewReader(src)); err != nil {
		t.Fatalf("ReadMessy: %v", err)
	}
	idx, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("want 2 clusters, got %d", idx.Len())
	}
	if got := idx.RelatedNames("MATTHEW"); len(got) != 5 {
		t.Errorf("MATTHEW cluster = %v, want 5 members", got)
	}
}
