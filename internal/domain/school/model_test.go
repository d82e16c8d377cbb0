package school

import "testing"

func TestSameConference(t *testing.T) {
	tests := []struct {
		name string
		a    School
		b    School
		want bool
	}{
		{name: "same conference", a: School{Conference: "SEC"}, b: School{Conference: "sec"}, want: true},
		{name: "different conference", a: School{Conference: "SEC"}, b: School{Conference: "Big Ten"}, want: false},
		{name: "both independent", a: School{Conference: "FBS Independents"}, b: School{Conference: "FBS Independents"}, want: false},
		{name: "missing conference", a: School{}, b: School{}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SameConference(tc.a, tc.b); got != tc.want {
				t.Fatalf("unexpected result: got=%v want=%v", got, tc.want)
			}
		})
	}
}
