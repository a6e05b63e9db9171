package booking

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd string
		want                           bool
	}{
		{"contained range", "2024-03-01", "2024-03-04", "2024-03-02", "2024-03-03", true},
		{"identical range", "2024-03-01", "2024-03-04", "2024-03-01", "2024-03-04", true},
		{"partial overlap at start", "2024-03-01", "2024-03-04", "2024-02-28", "2024-03-02", true},
		{"partial overlap at end", "2024-03-01", "2024-03-04", "2024-03-03", "2024-03-06", true},
		{"checkout day equals next check-in", "2024-03-01", "2024-03-04", "2024-03-04", "2024-03-06", false},
		{"check-in day equals previous checkout", "2024-03-04", "2024-03-06", "2024-03-01", "2024-03-04", false},
		{"disjoint before", "2024-03-01", "2024-03-04", "2024-02-01", "2024-02-05", false},
		{"disjoint after", "2024-03-01", "2024-03-04", "2024-03-10", "2024-03-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			if got != tc.want {
				t.Fatalf("Overlaps(%s..%s, %s..%s) = %v, want %v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestCovers(t *testing.T) {
	in, out := day("2024-03-01"), day("2024-03-04")
	if !Covers(in, out, day("2024-03-01")) {
		t.Fatal("check-in day should be covered")
	}
	if !Covers(in, out, day("2024-03-03")) {
		t.Fatal("middle day should be covered")
	}
	if Covers(in, out, day("2024-03-04")) {
		t.Fatal("checkout day must not be covered (half-open range)")
	}
	if Covers(in, out, day("2024-02-29")) {
		t.Fatal("day before check-in must not be covered")
	}
}

func TestNights(t *testing.T) {
	if n := Nights(day("2024-01-01"), day("2024-01-03")); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if n := Nights(day("2024-01-03"), day("2024-01-01")); n != -2 {
		t.Fatalf("expected -2, got %d", n)
	}
	// Crosses a DST boundary in local time; UTC day math must not care.
	if n := Nights(day("2024-03-30"), day("2024-04-01")); n != 2 {
		t.Fatalf("expected 2 across DST boundary, got %d", n)
	}
}
