package storefront

import "testing"

func TestEstimateCostBaseRates(t *testing.T) {
	cases := []struct {
		issue IssueType
		want  int
	}{
		{IssueNewFeature, 5000},
		{IssueContentUpdate, 1000},
		{IssueBugFix, 0},
	}
	for _, tc := range cases {
		if got := EstimateCost(tc.issue, nil); got != tc.want {
			t.Fatalf("EstimateCost(%s) = %d, want %d", tc.issue, got, tc.want)
		}
	}
}

func TestEstimateCostSumsAddons(t *testing.T) {
	addons := []Addon{
		{Label: "Priority Support", Price: 2000},
		{Label: "Extended Testing", Price: 1500},
	}
	if got := EstimateCost(IssueNewFeature, addons); got != 8500 {
		t.Fatalf("expected 8500, got %d", got)
	}
	// Removing an addon restores the previous figure.
	if got := EstimateCost(IssueNewFeature, addons[:1]); got != 7000 {
		t.Fatalf("expected 7000 after dropping an addon, got %d", got)
	}
	if got := EstimateCost(IssueBugFix, addons[:1]); got != 2000 {
		t.Fatalf("bug fix base is zero, expected addon-only 2000, got %d", got)
	}
}

func TestIssueTypeValid(t *testing.T) {
	for _, issue := range []IssueType{IssueNewFeature, IssueContentUpdate, IssueBugFix} {
		if !issue.Valid() {
			t.Fatalf("expected %s to be valid", issue)
		}
	}
	if IssueType("Rewrite Everything").Valid() {
		t.Fatalf("unexpected issue type accepted")
	}
}
