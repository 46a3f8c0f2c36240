package contact

import "testing"

func TestNewCanonicalizes(t *testing.T) {
	c := New("jane", "doe", "seattle", "wa", " 98101 ", "", "row-1")
	if c.FirstName != "JANE" || c.LastName != "DOE" {
		t.Errorf("names = %s %s", c.FirstName, c.LastName)
	}
	if c.City != "SEATTLE" || c.State != "WA" {
		t.Errorf("geo = %s %s", c.City, c.State)
	}
	if c.ZipCode != "98101" {
		t.Errorf("zip = %q", c.ZipCode)
	}
}

func TestZip5(t *testing.T) {
	tests := []struct {
		zip, want string
	}{
		{"98101", "98101"},
		{"981012345", "98101"},
		{"", ""},
		{"981", ""},
	}
	for _, tt := range tests {
		c := Contact{ZipCode: tt.zip}
		if got := c.Zip5(); got != tt.want {
			t.Errorf("Zip5(%q) = %q, want %q", tt.zip, got, tt.want)
		}
	}
}

func TestVariantsAreCopies(t *testing.T) {
	c := New("JO", "SMITH", "", "", "98101", "", "x")
	v := c.WithCityState("Seattle", "wa")
	if c.City != "" {
		t.Error("WithCityState mutated the original")
	}
	if v.City != "SEATTLE" || v.State != "WA" || v.ZipCode != "98101" {
		t.Errorf("variant = %+v", v)
	}
	w := v.WithoutZip()
	if v.ZipCode != "98101" || w.ZipCode != "" {
		t.Error("WithoutZip mutated the original or kept the zip")
	}
	if w.ImportID != "x" {
		t.Error("variant lost import id")
	}
}

func TestIdentityKey(t *testing.T) {
	a := New("JON", "SMITH", "SEATTLE", "WA", "98101", "", "x")
	b := New("JON", "SMITH", "SEATTLE", "WA", "", "", "y")
	if a.IdentityKey() != b.IdentityKey() {
		t.Error("identity key must ignore zip and import id")
	}
	c := New("JON", "SMITH", "TACOMA", "WA", "", "", "x")
	if a.IdentityKey() == c.IdentityKey() {
		t.Error("identity key must include city")
	}
}

type fakeIndexer map[string]int

func (f fakeIndexer) IndexOf(name string) (int, bool) {
	i, ok := f[name]
	return i, ok
}

func TestFuzzyID(t *testing.T) {
	c := New("Jon", "Smith", "", "", "981012345", "", "x")
	if got := c.FuzzyID(fakeIndexer{"JON": 12}); got != "SMITH|12|98101" {
		t.Errorf("FuzzyID = %q", got)
	}
	if got := c.FuzzyID(fakeIndexer{}); got != "SMITH|JON|98101" {
		t.Errorf("FuzzyID without cluster = %q", got)
	}
	if got := c.FuzzyID(nil); got != "SMITH|JON|98101" {
		t.Errorf("FuzzyID nil indexer = %q", got)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, last, first string
		wantErr         bool
	}{
		{"SMITH, JOHN A", "SMITH", "JOHN", false},
		{"smith, john", "SMITH", "JOHN", false},
		{"SMITH", "SMITH", "", false},
		{"SMITH, ", "SMITH", "", false},
		{"  ", "", "", true},
	}
	for _, tt := range tests {
		last, first, err := SplitName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("SplitName(%q) err = %v", tt.in, err)
			continue
		}
		if last != tt.last || first != tt.first {
			t.Errorf("SplitName(%q) = %q,%q want %q,%q", tt.in, last, first, tt.last, tt.first)
		}
	}
}

func TestJoinName(t *testing.T) {
	if got := JoinName("Smith", "jon"); got != "SMITH, JON" {
		t.Errorf("JoinName = %q", got)
	}
}

func TestPhoneNPA(t *testing.T) {
	tests := []struct {
		phone, want string
	}{
		{"(206) 555-0199", "206"},
		{"+1 206-555-0199", "206"},
		{"not a number", ""},
		{"", ""},
		{"+44 20 7946 0958", ""}, // valid but not NANP
	}
	for _, tt := range tests {
		c := Contact{Phone: tt.phone}
		if got := c.NPA(); got != tt.want {
			t.Errorf("NPA(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}

func TestNPAID(t *testing.T) {
	if got := NPAID("+12065550199"); got != "206" {
		t.Errorf("NPAID = %q", got)
	}
	if got := NPAID("+4402079460958"); got != "" {
		t.Errorf("NPAID non-US = %q", got)
	}
	if got := NPAID("+1206555"); got != "" {
		t.Errorf("NPAID short = %q", got)
	}
}
