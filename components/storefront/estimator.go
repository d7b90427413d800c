package storefront

// IssueType classifies a maintenance request.
type IssueType string

const (
	IssueNewFeature    IssueType = "New Feature"
	IssueContentUpdate IssueType = "Content Update"
	IssueBugFix        IssueType = "Bug Fix"
)

// Base costs per issue type. Bug fixes are free.
var issueBaseCost = map[IssueType]int{
	IssueNewFeature:    5000,
	IssueContentUpdate: 1000,
	IssueBugFix:        0,
}

// Valid reports whether the issue type is one of the supported values.
func (t IssueType) Valid() bool {
	_, ok := issueBaseCost[t]
	return ok
}

// BaseCost returns the fixed cost for the issue type.
func (t IssueType) BaseCost() int {
	return issueBaseCost[t]
}

// Addon is a fixed-price maintenance line item selected on the form.
type Addon struct {
	Label string `json:"label"`
	Price int    `json:"price"`
}

// EstimateCost is a pure function over the form state: the issue base cost
// plus the sum of selected add-on prices. The same inputs always produce the
// same total.
func EstimateCost(issue IssueType, addons []Addon) int {
	cost := issueBaseCost[issue]
	for _, addon := range addons {
		cost += addon.Price
	}
	return cost
}
