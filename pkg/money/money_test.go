package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	inr := NewFormatter("INR", "en-IN")
	usd := NewFormatter("USD", "en-US")

	tests := []struct {
		name      string
		formatter *Formatter
		amount    float64
		want      string
	}{
		{"fd maturity example", inr, 107763.2599, "₹1,07,763"},
		{"small amount", inr, 999, "₹999"},
		{"thousands", inr, 1500, "₹1,500"},
		{"crore", inr, 12345678, "₹1,23,45,678"},
		{"zero", inr, 0, "₹0"},
		{"rounds half away from zero", inr, 10.5, "₹11"},
		{"negative", inr, -1500, "-₹1,500"},
		{"negative rounds away from zero", inr, -10.5, "-₹11"},
		{"western grouping", usd, 1234567.4, "$1,234,567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.formatter.Format(tt.amount))
		})
	}
}

func TestFormatter_Code(t *testing.T) {
	assert.Equal(t, "INR", NewFormatter("inr", "en-IN").Code())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 50.0, Percentage(50, 100))
	assert.Equal(t, 150.0, Percentage(150, 100))
	assert.Equal(t, 0.0, Percentage(10, 0))
	assert.Equal(t, 0.0, Percentage(10, -5))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
	assert.Equal(t, 0.0, Sum())
}
