// Package epcqr builds the EPC069-12 text payload for SEPA credit-transfer
// QR codes. Encoding the payload into a QR image is left to an external
// renderer.
package epcqr

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payload returns the 12 newline-separated fields of an EPC QR code:
// service tag, version, charset, identification, BIC (optional since SEPA
// 2.0), beneficiary name, IBAN with whitespace stripped, the amount as EUR
// with exactly two decimals, then purpose, structured and unstructured
// remittance, and beneficiary-to-originator info, all left empty.
func Payload(iban, bic, beneficiary string, amount decimal.Decimal) string {
	fields := []string{
		"BCD",
		"002",
		"1",
		"SCT",
		bic,
		beneficiary,
		stripSpaces(iban),
		"EUR" + amount.StringFixed(2),
		"",
		"",
		"",
		"",
	}
	return strings.Join(fields, "\n")
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}
