package answer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.BrazilianPortuguese

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Number formats n with Brazilian thousands separators: 1234567 → "1.234.567".
func Number(n int64) string {
	return message.NewPrinter(lang).Sprintf("%d", n)
}

// Percent formats v with one decimal and a decimal comma: 45.25 → "45,2%".
func Percent(v float64) string {
	return message.NewPrinter(lang).Sprintf("%.1f", v) + "%"
}

// MonthName returns the Portuguese name of month (1-12), lowercase.
// Out-of-range months yield "".
func MonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return ""
	}
	return monthNames[month-1]
}

func capitalize(s string) string {
	return cases.Title(lang).String(s)
}
