// Package currency formats monetary amounts. Amounts are int64 centavos
// everywhere in the system; formatting to "R$1.234,56" happens only at the
// presentation boundary.
package currency

import "github.com/Rhymond/go-money"

// FormatBRL renders centavos as a Brazilian Real display string.
func FormatBRL(centavos int64) string {
	return money.New(centavos, money.BRL).Display()
}

// FormatSignedBRL renders centavos with an explicit sign prefix for
// positive values, used for ledger deltas ("+R$10,00" / "-R$10,00").
func FormatSignedBRL(centavos int64) string {
	if centavos > 0 {
		return "+" + money.New(centavos, money.BRL).Display()
	}
	return money.New(centavos, money.BRL).Display()
}
