package receipt

import "strconv"

// FormatRupiah renders a whole-rupiah amount with dot-grouped thousands,
// e.g. 15000 -> "Rp15.000". The rupiah has no subdivision here.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return sign + "Rp" + string(out)
}

// FormatGrouped renders a bare dot-grouped number without the currency
// prefix, used inside "qty x price" rows.
func FormatGrouped(amount int64) string {
	s := FormatRupiah(amount)
	if len(s) > 0 && s[0] == '-' {
		return "-" + s[3:]
	}
	return s[2:]
}
