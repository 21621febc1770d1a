package services

const PackagePremiumMonthly = "premium_monthly"

// PremiumPackage is a fixed, server-side price point. Amounts never come
// from the client.
type PremiumPackage struct {
	Amount       float64
	Currency     string
	DurationDays int
}

var premiumPackages = map[string]PremiumPackage{
	PackagePremiumMonthly: {Amount: 200.0, Currency: "INR", DurationDays: 30},
}

func LookupPackage(packageID string) (PremiumPackage, bool) {
	p, ok := premiumPackages[packageID]
	return p, ok
}
