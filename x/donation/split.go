package donation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
)

// Split is the part of the distributed interest a beneficiary receives.
type Split struct {
	Beneficiary charity.Address `json:"beneficiary"`
	// Percentage must be between 1 and 100.
	Percentage uint32 `json:"percentage"`
}

func (s Split) String() string {
	return fmt.Sprintf("%s:%d", s.Beneficiary, s.Percentage)
}

// ParseSplit parses the "<address>:<percentage>" representation of a split.
func ParseSplit(raw string) (Split, error) {
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		return Split{}, errors.ErrInput.Newf("split %q: expected <address>:<percentage>", raw)
	}
	addr, err := charity.ParseAddress(raw[:i])
	if err != nil {
		return Split{}, errors.Wrapf(err, "split %q", raw)
	}
	pct, err := strconv.ParseUint(raw[i+1:], 10, 32)
	if err != nil {
		return Split{}, errors.ErrInput.Newf("split %q: invalid percentage", raw)
	}
	return Split{Beneficiary: addr, Percentage: uint32(pct)}, nil
}

// percentages returns only the percentages of all splits, in order.
func percentages(splits []Split) []uint32 {
	res := make([]uint32, len(splits))
	for i, s := range splits {
		res[i] = s.Percentage
	}
	return res
}

// validateSplits ensures that splits name only trusted beneficiaries and
// partition the whole interest. The first problem found is returned.
func validateSplits(db charity.ReadOnlyKVStore, reg Registry, splits []Split) error {
	if len(splits) == 0 {
		return errors.Wrap(errors.ErrNoBeneficiaries, "empty splits")
	}
	var total uint64
	for i, s := range splits {
		field := fmt.Sprintf("Splits.%d", i)
		if s.Beneficiary.IsZero() {
			return errors.Field(field+".Beneficiary", errors.ErrZeroAddress, "")
		}
		switch ok, err := reg.IsTrusted(db, s.Beneficiary); {
		case err != nil:
			return err
		case !ok:
			return errors.Field(field+".Beneficiary", errors.ErrUntrustedBeneficiary, "%s", s.Beneficiary)
		}
		if s.Percentage < 1 || s.Percentage > coin.FullPercentage {
			return errors.Field(field+".Percentage", errors.ErrPercentageOutOfRange, "%d", s.Percentage)
		}
		total += uint64(s.Percentage)
	}
	if total != coin.FullPercentage {
		return errors.Wrapf(errors.ErrPercentageSum, "got %d", total)
	}
	return nil
}
