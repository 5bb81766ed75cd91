// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emission

import (
	"sort"

	"github.com/ippan/dlc/fixed"
	"github.com/ippan/dlc/ids"
	"github.com/ippan/dlc/units"
)

// Distribution is the outcome of splitting one round's reward and fees
// among the proposer, the shadow verifiers, the dividend pool, and burned
// excess fees.
type Distribution struct {
	Reward         units.Atomic
	CappedFees     units.Atomic
	BurnedFees     units.Atomic
	Total          units.Atomic
	DividendCredit units.Atomic
	ProposerShare  units.Atomic
	VerifierShare  units.Atomic
	ShadowPayouts  map[ids.ValidatorID]units.Atomic
}

// Distribute computes the per-round reward split in full:
//
//  1. capped_fees = min(fees, reward * fee_cap_numer / fee_cap_denom);
//     excess is burned (default) or credited to the dividend pool per
//     params.ExcessFeeRouting.
//  2. total = reward + capped_fees.
//  3. dividend_credit starts as total * dividend_fraction_bps / 10000.
//  4. remaining = total - dividend_credit is split proposer/verifier by
//     proposer_weight_bps / verifier_weight_bps.
//  5. verifier_share is divided among shadowScores by fairness score,
//     normalized so weights sum to the share; any rounding residue is
//     credited to the dividend pool, never lost and never credited to a
//     validator twice.
//
// The result satisfies, exactly in micro-IPN: Σ ShadowPayouts +
// ProposerShare + DividendCredit + BurnedFees == reward + fees.
func Distribute(params Params, reward, fees units.Atomic, shadowScores map[ids.ValidatorID]fixed.Fixed) Distribution {
	feeCap := reward.MulDivFloor(params.FeeCapNumer, params.FeeCapDenom)
	cappedFees := units.Min(fees, feeCap)
	excess := fees.Sub(cappedFees)

	total := reward.Add(cappedFees)

	dividendCredit := total.MulDivFloor(uint64(params.DividendFractionBps), 10_000)
	remaining := total.Sub(dividendCredit)

	proposerShare := remaining.MulDivFloor(uint64(params.ProposerWeightBps), 10_000)
	verifierShare := remaining.Sub(proposerShare)

	payouts, verifierRemainder := splitByScore(verifierShare, shadowScores)
	dividendCredit = dividendCredit.Add(verifierRemainder)

	burned := units.Zero
	switch params.ExcessFeeRouting {
	case ExcessFeeDividend:
		dividendCredit = dividendCredit.Add(excess)
	default:
		burned = excess
	}

	return Distribution{
		Reward:         reward,
		CappedFees:     cappedFees,
		BurnedFees:     burned,
		Total:          total,
		DividendCredit: dividendCredit,
		ProposerShare:  proposerShare,
		VerifierShare:  verifierShare,
		ShadowPayouts:  payouts,
	}
}

// splitByScore divides total among the validators in scores, weighted by
// each non-negative score (negative or zero scores fall back to an equal
// split if every score is non-positive). It returns the per-validator
// payouts and the integer-division remainder left over, which the caller
// credits to the dividend pool rather than discarding.
func splitByScore(total units.Atomic, scores map[ids.ValidatorID]fixed.Fixed) (map[ids.ValidatorID]units.Atomic, units.Atomic) {
	ordered := make([]ids.ValidatorID, 0, len(scores))
	for id := range scores {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Less(ordered[j]) })

	weights := make(map[ids.ValidatorID]uint64, len(ordered))
	var sumWeights uint64
	for _, id := range ordered {
		w := uint64(0)
		if raw := scores[id].Raw(); raw > 0 {
			w = uint64(raw)
		}
		weights[id] = w
		sumWeights += w
	}
	if sumWeights == 0 {
		for _, id := range ordered {
			weights[id] = 1
		}
		sumWeights = uint64(len(ordered))
	}

	payouts := make(map[ids.ValidatorID]units.Atomic, len(ordered))
	paidOut := units.Zero
	for _, id := range ordered {
		share := total.MulDivFloor(weights[id], sumWeights)
		payouts[id] = share
		paidOut = paidOut.Add(share)
	}
	remainder := total.Sub(paidOut)
	return payouts, remainder
}
