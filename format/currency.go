// Package format da formato local (es-CO) a montos y porcentajes y
// recupera números desde texto capturado en formularios.
package format

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // etiqueta de idioma fija
var locale = language.MustParse("es-CO")

// CurrencySymbol es el símbolo del peso colombiano.
const CurrencySymbol = "$"

// FormatCurrency formatea un monto sin decimales con separador de miles
// local, p. ej. "$ 4.000.000". Los montos se truncan a la unidad.
func FormatCurrency(amount decimal.Decimal) string {
	units := amount.Truncate(0).IntPart()
	p := message.NewPrinter(locale)
	if units < 0 {
		return "-" + CurrencySymbol + " " + p.Sprintf("%d", -units)
	}
	return CurrencySymbol + " " + p.Sprintf("%d", units)
}

// FormatCurrencyFloat es FormatCurrency para valores float64 del formulario.
func FormatCurrencyFloat(amount float64) string {
	return FormatCurrency(decimal.NewFromFloat(sanitize(amount)))
}

// ParseCurrency elimina todo lo que no sea dígito y devuelve el monto. Texto
// vacío o sin dígitos devuelve cero.
func ParseCurrency(s string) decimal.Decimal {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPercent formatea una tasa con hasta dos decimales, p. ej. "1,2%".
func FormatPercent(rate float64) string {
	p := message.NewPrinter(locale)
	s := p.Sprintf("%.2f", sanitize(rate))
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ",.")
	return s + "%"
}

// ParseNumber interpreta un número escrito en un campo de formulario con las
// convenciones es-CO: punto de miles y coma decimal. También acepta el
// formato inverso cuando no es ambiguo. Cualquier entrada inválida devuelve
// cero.
//
//	"2.500"        -> 2500
//	"1.300.000,50" -> 1300000.5
//	"1,300,000"    -> 1300000
//	"2,5" / "2.5"  -> 2.5
func ParseNumber(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '$' || r == '%' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	var intPart, fracPart string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Con ambos separadores, el último es el decimal.
		dec, group := ",", "."
		if lastDot > lastComma {
			dec, group = ".", ","
		}
		i := strings.LastIndex(s, dec)
		intPart, fracPart = s[:i], s[i+1:]
		if !isGrouped(intPart, group) {
			return 0
		}
		intPart = strings.ReplaceAll(intPart, group, "")
	case lastComma >= 0:
		intPart, fracPart = splitSingleSeparator(s, ",")
	case lastDot >= 0:
		intPart, fracPart = splitSingleSeparator(s, ".")
	default:
		intPart = s
	}

	if !allDigits(intPart) || !allDigits(fracPart) || (intPart == "" && fracPart == "") {
		return 0
	}
	number := sign + intPart
	if fracPart != "" {
		number += "." + fracPart
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

// splitSingleSeparator resuelve una cadena con un solo tipo de separador.
// Varias apariciones son separadores de miles. Una sola es de miles cuando
// la sigue un grupo de tres dígitos y la precede un grupo válido distinto
// de cero ("2.500"); si no, es el decimal ("0.500", "1234.567", "2,5").
func splitSingleSeparator(s, sep string) (string, string) {
	parts := strings.Split(s, sep)
	if len(parts) > 2 {
		if !isGrouped(s, sep) {
			return "-", ""
		}
		return strings.ReplaceAll(s, sep, ""), ""
	}

	head, tail := parts[0], parts[1]
	leadingGroup := len(head) >= 1 && len(head) <= 3 && strings.TrimLeft(head, "0") != ""
	if leadingGroup && len(tail) == 3 {
		return head + tail, ""
	}
	return head, tail
}

// isGrouped valida grupos de miles: 1 a 3 dígitos y luego grupos de 3.
func isGrouped(s, sep string) bool {
	groups := strings.Split(s, sep)
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
