package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{
			name:  "major minor",
			input: "6.1",
			want:  Version{Major: 6, Minor: 1},
		},
		{
			name:  "major minor patch",
			input: "5.13.1",
			want:  Version{Major: 5, Minor: 13, Patch: 1},
		},
		{
			name:  "with build metadata",
			input: "5.13 build 1244-79d6e57",
			want:  Version{Major: 5, Minor: 13, Build: "1244-79d6e57"},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "single component",
			input:   "6",
			wantErr: true,
		},
		{
			name:    "too many components",
			input:   "6.1.2.3",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "six.one",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "6.1", b: "6.1", want: 0},
		{name: "major wins", a: "6.0", b: "5.13", want: 1},
		{name: "minor wins", a: "5.12", b: "5.13", want: -1},
		{name: "patch wins", a: "5.13.1", b: "5.13", want: 1},
		{name: "build ignored", a: "5.13 build 99", b: "5.13 build 100", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.a)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.a, err)
			}
			b, err := Parse(tt.b)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.b, err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAtLeast(t *testing.T) {
	t.Run("newer server passes", func(t *testing.T) {
		ok, err := AtLeast("6.1", "5.13")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("6.1 should satisfy a 5.13 minimum")
		}
	})

	t.Run("older server fails", func(t *testing.T) {
		ok, err := AtLeast("5.12", "5.13")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("5.12 should not satisfy a 5.13 minimum")
		}
	})

	t.Run("invalid input errors", func(t *testing.T) {
		if _, err := AtLeast("garbage", "5.13"); err == nil {
			t.Error("expected error for unparseable server version")
		}
	})
}

func TestString(t *testing.T) {
	v := Version{Major: 5, Minor: 13, Patch: 1, Build: "1244"}
	if got := v.String(); got != "5.13.1 build 1244" {
		t.Errorf("String() = %q", got)
	}

	v = Version{Major: 6, Minor: 1}
	if got := v.String(); got != "6.1" {
		t.Errorf("String() = %q", got)
	}
}
