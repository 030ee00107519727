// Package validate holds the deterministic cross-field checks that run
// against a coerced deed. Each check is a pure function; the pipeline runs
// them in a fixed order and stops at the first failure.
package validate

import (
	"github.com/ppiankov/deedgate/internal/amountwords"
	"github.com/ppiankov/deedgate/internal/model"
)

const dateLayout = "2006-01-02"

// DateOrder fails unless the deed was recorded on or after the day it was
// signed. The failure message carries both literal dates.
func DateOrder(deed *model.ParsedDeed) *model.Rejection {
	if deed.DateRecorded.Before(deed.DateSigned) {
		return model.Rejectf(model.KindInvalidDateOrder,
			"recorded date (%s) is earlier than signed date (%s)",
			deed.DateRecorded.Format(dateLayout), deed.DateSigned.Format(dateLayout))
	}
	return nil
}

// AmountConsistency parses the written amount and requires exact equality,
// to the cent, with the numeric amount. The failure message carries both
// values; an unparseable written amount is its own failure kind.
func AmountConsistency(deed *model.ParsedDeed) *model.Rejection {
	derived, err := amountwords.Parse(deed.AmountText)
	if err != nil {
		return model.Rejectf(model.KindAmountParse,
			"cannot parse written amount %q: %v", deed.AmountText, err)
	}

	if !deed.AmountNumeric.Equal(derived) {
		return model.Rejectf(model.KindAmountMismatch,
			"numeric amount (%s) does not match written amount %q (parses to %s)",
			deed.AmountNumeric, deed.AmountText, derived)
	}
	return nil
}

// All runs every validator in its fixed order: date order first, then
// amount consistency. The first failure wins; no errors are accumulated.
func All(deed *model.ParsedDeed) *model.Rejection {
	if rej := DateOrder(deed); rej != nil {
		return rej
	}
	if rej := AmountConsistency(deed); rej != nil {
		return rej
	}
	return nil
}
