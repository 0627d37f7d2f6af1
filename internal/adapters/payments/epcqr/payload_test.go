package epcqr

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadLayout(t *testing.T) {
	p := Payload("FR76 3000 6000 0112 3456 7890 189", "BNPAFRPP", "Jean Dupont", decimal.RequireFromString("53.82"))

	fields := strings.Split(p, "\n")
	require.Len(t, fields, 12)

	assert.Equal(t, "BCD", fields[0])
	assert.Equal(t, "002", fields[1])
	assert.Equal(t, "1", fields[2])
	assert.Equal(t, "SCT", fields[3])
	assert.Equal(t, "BNPAFRPP", fields[4])
	assert.Equal(t, "Jean Dupont", fields[5])
	assert.Equal(t, "FR7630006000011234567890189", fields[6], "IBAN whitespace is stripped")
	assert.Equal(t, "EUR53.82", fields[7])
	for i := 8; i < 12; i++ {
		assert.Empty(t, fields[i])
	}
}

func TestPayloadAmountAlwaysTwoDecimals(t *testing.T) {
	cases := map[string]string{
		"10":     "EUR10.00",
		"10.5":   "EUR10.50",
		"0.1":    "EUR0.10",
		"1234.5": "EUR1234.50",
	}
	for in, want := range cases {
		p := Payload("FR761234", "", "X", decimal.RequireFromString(in))
		fields := strings.Split(p, "\n")
		assert.Equal(t, want, fields[7], "amount %s", in)
	}
}

func TestPayloadBICOptional(t *testing.T) {
	p := Payload("FR761234", "", "Jean Dupont", decimal.New(1, 0))
	fields := strings.Split(p, "\n")
	assert.Empty(t, fields[4])
	assert.Equal(t, "Jean Dupont", fields[5])
}
