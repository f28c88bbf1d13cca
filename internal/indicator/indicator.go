package indicator

import "fmt"

// Indicator identifies one of the five demographic metrics tracked per
// country.
type Indicator int

const (
	Birth Indicator = iota
	Death
	Over65
	Growth
	Total
)

// All lists the indicators in their fixed row order.
var All = []Indicator{Birth, Death, Over65, Growth, Total}

var indicatorNames = [...]string{
	Birth:  "birth",
	Death:  "death",
	Over65: "over65",
	Growth: "growth",
	Total:  "total",
}

// String returns the short key used in configuration files.
func (i Indicator) String() string {
	if i < Birth || i > Total {
		return fmt.Sprintf("indicator(%d)", int(i))
	}
	return indicatorNames[i]
}

// MarshalText encodes the indicator as its configuration key.
func (i Indicator) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Parse maps a configuration key back to its Indicator.
func Parse(key string) (Indicator, error) {
	for i, name := range indicatorNames {
		if name == key {
			return Indicator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown indicator %q", key)
}

// CountrySeries is the five-indicator record for one country.
type CountrySeries struct {
	Country string
	Birth   Series
	Death   Series
	Over65  Series
	Growth  Series
	Total   Series
}

// Get returns the series for the given indicator.
func (c *CountrySeries) Get(i Indicator) Series {
	switch i {
	case Birth:
		return c.Birth
	case Death:
		return c.Death
	case Over65:
		return c.Over65
	case Growth:
		return c.Growth
	case Total:
		return c.Total
	}
	return Series{}
}

// Set stores s under the given indicator.
func (c *CountrySeries) Set(i Indicator, s Series) {
	switch i {
	case Birth:
		c.Birth = s
	case Death:
		c.Death = s
	case Over65:
		c.Over65 = s
	case Growth:
		c.Growth = s
	case Total:
		c.Total = s
	}
}

// Rows returns the series in fixed order: birth, death, over65, growth, total.
func (c *CountrySeries) Rows() []Series {
	rows := make([]Series, 0, len(All))
	for _, i := range All {
		rows = append(rows, c.Get(i))
	}
	return rows
}
