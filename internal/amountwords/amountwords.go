// Package amountwords converts written-English currency amounts into exact
// decimal values. The conversion is strictly lexical: unknown or garbled
// word sequences fail instead of being guessed at.
package amountwords

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var numWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleWords = map[string]int64{
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
}

// Fraction suffix in the "and 45/100" / "and NO/100" legal-document style
var fractionRe = regexp.MustCompile(`^(no|\d{1,2})/100$`)

// Parse converts a written amount like "One Million Two Hundred Fifty
// Thousand Dollars and 45/100" into a decimal. It fails on empty input,
// unknown words, and out-of-order scale words.
func Parse(text string) (decimal.Decimal, error) {
	tokens := lex(text)
	if len(tokens) == 0 {
		return decimal.Zero, fmt.Errorf("no amount words in %q", text)
	}

	dollarTokens, centTokens, fraction, err := splitCurrency(tokens, text)
	if err != nil {
		return decimal.Zero, err
	}

	var whole int64
	if len(dollarTokens) > 0 {
		whole, err = wordsToInt(dollarTokens, text)
		if err != nil {
			return decimal.Zero, err
		}
	}

	cents := fraction
	if len(centTokens) > 0 {
		cents, err = wordsToInt(centTokens, text)
		if err != nil {
			return decimal.Zero, err
		}
		if cents >= 100 {
			return decimal.Zero, fmt.Errorf("cents part %d out of range in %q", cents, text)
		}
	}

	if len(dollarTokens) == 0 && len(centTokens) == 0 && fraction == 0 {
		return decimal.Zero, fmt.Errorf("no amount words in %q", text)
	}

	total := decimal.NewFromInt(whole)
	if cents != 0 {
		total = total.Add(decimal.New(cents, -2))
	}
	return total, nil
}

// lex lowercases, splits hyphenated numbers, strips punctuation (keeping
// the NN/100 fraction form intact) and drops the connective "and".
func lex(text string) []string {
	t := strings.ToLower(text)
	t = strings.ReplaceAll(t, "-", " ")

	var b strings.Builder
	for _, r := range t {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '/' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, f := range strings.Fields(b.String()) {
		if f == "and" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// splitCurrency separates the dollar words from the cent words using the
// "dollars"/"cents" markers and the NN/100 fraction form.
func splitCurrency(tokens []string, text string) (dollars, cents []string, fraction int64, err error) {
	seenDollars := false
	seenCents := false
	seenFraction := false

	for _, tok := range tokens {
		switch {
		case seenCents:
			return nil, nil, 0, fmt.Errorf("unexpected %q after cents in %q", tok, text)

		case tok == "dollar" || tok == "dollars":
			if seenDollars {
				return nil, nil, 0, fmt.Errorf("repeated dollars marker in %q", text)
			}
			seenDollars = true

		case tok == "cent" || tok == "cents":
			seenCents = true

		case fractionRe.MatchString(tok):
			if seenFraction {
				return nil, nil, 0, fmt.Errorf("repeated fraction in %q", text)
			}
			seenFraction = true
			m := fractionRe.FindStringSubmatch(tok)
			if m[1] != "no" {
				fraction, _ = strconv.ParseInt(m[1], 10, 64)
			}

		case seenDollars || seenFraction:
			cents = append(cents, tok)

		default:
			dollars = append(dollars, tok)
		}
	}

	if seenFraction && len(cents) > 0 {
		return nil, nil, 0, fmt.Errorf("both fraction and cent words in %q", text)
	}
	// "Fifty Cents" with no dollars marker: the words belong to the cent part
	if seenCents && !seenDollars && !seenFraction && len(cents) == 0 {
		dollars, cents = nil, dollars
	}
	return dollars, cents, fraction, nil
}

// wordsToInt converts a sequence of English number words into an integer.
// Scale words must appear in strictly decreasing order ("two thousand one
// million" is garbled, not a guessable amount).
func wordsToInt(tokens []string, text string) (int64, error) {
	var total, current int64
	lastScale := int64(1 << 62)

	for _, tok := range tokens {
		if n, ok := numWords[tok]; ok {
			current += n
			continue
		}
		if tok == "hundred" {
			if current == 0 {
				current = 1
			}
			current *= 100
			continue
		}
		if scale, ok := scaleWords[tok]; ok {
			if scale >= lastScale {
				return 0, fmt.Errorf("garbled amount: %q out of order in %q", tok, text)
			}
			lastScale = scale
			if current == 0 {
				current = 1
			}
			total += current * scale
			current = 0
			continue
		}
		return 0, fmt.Errorf("unrecognized amount word %q in %q", tok, text)
	}

	return total + current, nil
}
