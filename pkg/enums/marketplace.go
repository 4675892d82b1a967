package enums

import "fmt"

// Marketplace names the marketplace integration a record came from.
type Marketplace string

const (
	MarketplaceOzon        Marketplace = "ozon"
	MarketplaceWildberries Marketplace = "wildberries"
	MarketplaceYandex      Marketplace = "yandex"
	MarketplaceAliExpress  Marketplace = "aliexpress"
)

var validMarketplaces = []Marketplace{
	MarketplaceOzon,
	MarketplaceWildberries,
	MarketplaceYandex,
	MarketplaceAliExpress,
}

// String implements fmt.Stringer.
func (m Marketplace) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Marketplace.
func (m Marketplace) IsValid() bool {
	for _, candidate := range validMarketplaces {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMarketplace converts raw input into a Marketplace.
func ParseMarketplace(value string) (Marketplace, error) {
	for _, candidate := range validMarketplaces {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid marketplace %q", value)
}

// Marketplaces returns the marketplace vocabulary in display order.
func Marketplaces() []Marketplace {
	out := make([]Marketplace, len(validMarketplaces))
	copy(out, validMarketplaces)
	return out
}
