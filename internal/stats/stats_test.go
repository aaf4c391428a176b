package stats

import "testing"

func TestSumCountsEveryFieldOnce(t *testing.T) {
	all := []CodeStats{
		{StaticMutItems: 1, TotalFns: 2, TotalLines: 10, TotalStatements: 5, UnsafeFns: 1, UnsafeStatements: 3, Unwraps: 2},
		{StaticMutItems: 2, TotalFns: 1, TotalLines: 20, TotalStatements: 7, UnsafeFns: 0, UnsafeStatements: 1, Unwraps: 4},
	}

	total := Sum(all)

	// Every counter is the plain field-wise sum, static mut included.
	want := CodeStats{
		StaticMutItems:   3,
		TotalFns:         3,
		TotalLines:       30,
		TotalStatements:  12,
		UnsafeFns:        1,
		UnsafeStatements: 4,
		Unwraps:          6,
	}
	if total != want {
		t.Errorf("Sum = %+v, want %+v", total, want)
	}
}

func TestSumOrderIndependent(t *testing.T) {
	a := CodeStats{StaticMutItems: 1, UnsafeFns: 2, Unwraps: 3}
	b := CodeStats{TotalFns: 4, UnsafeStatements: 5}
	c := CodeStats{TotalLines: 6, TotalStatements: 7, Unwraps: 1}

	forward := Sum([]CodeStats{a, b, c})
	backward := Sum([]CodeStats{c, b, a})

	if forward != backward {
		t.Errorf("Sum depends on order: %+v vs %+v", forward, backward)
	}
}

func TestIsPerfect(t *testing.T) {
	tests := []struct {
		name string
		cs   CodeStats
		want bool
	}{
		{"zero value", CodeStats{}, true},
		{"only cosmetic counters", CodeStats{TotalFns: 5, TotalLines: 100, TotalStatements: 40}, true},
		{"unsafe fn", CodeStats{TotalFns: 5, UnsafeFns: 1}, false},
		{"unsafe statements", CodeStats{UnsafeStatements: 2}, false},
		{"static mut", CodeStats{StaticMutItems: 1}, false},
		{"unwrap", CodeStats{Unwraps: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cs.IsPerfect(); got != tt.want {
				t.Errorf("IsPerfect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldReportChange(t *testing.T) {
	base := CodeStats{
		StaticMutItems: 1, TotalFns: 10, TotalLines: 100,
		TotalStatements: 50, UnsafeFns: 2, UnsafeStatements: 5, Unwraps: 3,
	}

	cosmetic := base
	cosmetic.TotalFns = 12
	cosmetic.TotalLines = 120
	cosmetic.TotalStatements = 60
	if base.ShouldReportChange(cosmetic) {
		t.Error("cosmetic-only differences must not be reported")
	}

	for name, mutate := range map[string]func(*CodeStats){
		"unsafe fns":        func(cs *CodeStats) { cs.UnsafeFns++ },
		"unsafe statements": func(cs *CodeStats) { cs.UnsafeStatements++ },
		"static mut":        func(cs *CodeStats) { cs.StaticMutItems++ },
		"unwraps":           func(cs *CodeStats) { cs.Unwraps++ },
	} {
		changed := base
		mutate(&changed)
		if !base.ShouldReportChange(changed) {
			t.Errorf("%s change must be reported", name)
		}
	}
}
