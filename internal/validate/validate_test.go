package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	for in, want := range map[string]int{"1": 1, " 42 ": 42, "0007": 7} {
		got, ok := ID(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "0", "-3", "abc", "1.5", "12345678901", "1e3"} {
		_, ok := ID(in)
		assert.False(t, ok, in)
	}
}

func TestFacet(t *testing.T) {
	for _, in := range []string{
		"", "BMW", "Mercedes-Benz", "Citroën", "Plug-in Hybrid", "Alfa Romeo",
		"Rolls-Royce Motor Cars, Ltd", "Smart#1", "BMW:M", "Lynk & Co", " Dacia ",
	} {
		got, ok := Facet(in)
		assert.True(t, ok, in)
		assert.Equal(t, in, got, "value kept verbatim")
	}
	for _, in := range []string{"\xff\xfe", "a\x00b", "line\nbreak", strings.Repeat("x", 129)} {
		_, ok := Facet(in)
		assert.False(t, ok, in)
	}
}

func TestAmountAndWhole(t *testing.T) {
	p, ok := Amount("")
	assert.True(t, ok)
	assert.Nil(t, p)

	p, ok = Amount("15000.50")
	require.True(t, ok)
	assert.Equal(t, 15000.5, *p)

	p, ok = Amount("0")
	require.True(t, ok)
	assert.Equal(t, 0.0, *p)

	for _, in := range []string{"-1", "abc", "NaN", "Inf"} {
		_, ok := Amount(in)
		assert.False(t, ok, in)
	}

	n, ok := Whole("2015")
	require.True(t, ok)
	assert.Equal(t, 2015, *n)
	for _, in := range []string{"-1", "20.5", "two"} {
		_, ok := Whole(in)
		assert.False(t, ok, in)
	}
}

func TestCriteria(t *testing.T) {
	form := map[string]string{
		"make": "BMW", "fuel": "", "gearbox": "Automatic",
		"minPrice": "1000", "maxPrice": "", "maxKm": "150000", "minYear": "2015",
	}
	c, err := Criteria(func(k string) string { return form[k] })
	require.NoError(t, err)
	assert.Equal(t, "BMW", c.Make)
	assert.Empty(t, c.Fuel)
	assert.Equal(t, "Automatic", c.Gearbox)
	assert.Equal(t, 1000.0, *c.MinPrice)
	assert.Nil(t, c.MaxPrice)
	assert.Equal(t, 150000, *c.MaxKm)
	assert.Equal(t, 2015, *c.MinYear)

	empty, err := Criteria(func(string) string { return "" })
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestCriteriaInvalidField(t *testing.T) {
	form := map[string]string{"maxKm": "lots"}
	_, err := Criteria(func(k string) string { return form[k] })
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "maxKm", fe.Field)
	assert.Equal(t, `invalid maxKm "lots"`, fe.Error())
}

func TestCriteriaKeepsPunctuatedMake(t *testing.T) {
	q := map[string]string{"make": "Rolls-Royce Motor Cars, Ltd", "fuel": "Smart#1"}
	c, err := Criteria(func(k string) string { return q[k] })
	require.NoError(t, err)
	assert.Equal(t, "Rolls-Royce Motor Cars, Ltd", c.Make)
	assert.Equal(t, "Smart#1", c.Fuel)
}
