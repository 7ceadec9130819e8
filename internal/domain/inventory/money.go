package inventory

import "fmt"

// Money is an amount in minor currency units (agorot).
type Money int64

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) Times(n int) Money {
	return m * Money(n)
}
