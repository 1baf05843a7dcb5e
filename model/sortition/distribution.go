// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package sortition

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/multivactech/sortition/model/wire"
)

// BurnSamplePoint is one candidate of a burn distribution: a block commit,
// its burn weight, and the half-open slice [RangeStart, RangeEnd) of the
// 256-bit sampling domain allotted to it.
type BurnSamplePoint struct {
	// Burns is the candidate's burn contribution for this round.
	Burns uint64

	// RangeStart is the inclusive lower bound of the candidate's slice.
	RangeStart *uint256.Int

	// RangeEnd is the exclusive upper bound of the candidate's slice.  The
	// final candidate's bound is the all-ones value standing in for the
	// top of the domain.
	RangeEnd *uint256.Int

	// Candidate is the block commit that wins if the sampling index lands
	// in this slice.
	Candidate *wire.MsgBlockCommit
}

// BurnDistribution is a validated, ordered burn distribution.  Construction
// through NewBurnDistribution guarantees that whenever the distribution can
// be sampled (more than one candidate with a positive aggregate burn), the
// ranges are ascending, non-overlapping and cover the whole domain with no
// gaps.  The winner selector relies on that guarantee: a lookup miss there
// is a defect, not a runtime condition.
type BurnDistribution struct {
	points []BurnSamplePoint
}

// MaxRangeValue returns the top bound of the sampling domain (the all-ones
// 256-bit value).
func MaxRangeValue() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// NewBurnDistribution validates the given sample points and wraps them into
// a BurnDistribution.  Malformed input is rejected here, at the construction
// boundary, rather than trusted until the selector trips over it.
func NewBurnDistribution(points []BurnSamplePoint) (*BurnDistribution, error) {
	for i := range points {
		if points[i].Candidate == nil {
			return nil, fmt.Errorf("burn sample point %d has no candidate", i)
		}
	}

	if len(points) > 1 && aggregateBurns(points).Sign() > 0 {
		for i := range points {
			if points[i].RangeStart == nil || points[i].RangeEnd == nil {
				return nil, fmt.Errorf("burn sample point %d has no sampling range", i)
			}
			if points[i].RangeStart.Gt(points[i].RangeEnd) {
				return nil, fmt.Errorf("burn sample point %d has a descending range [%v, %v)",
					i, points[i].RangeStart, points[i].RangeEnd)
			}
		}
		if !points[0].RangeStart.IsZero() {
			return nil, fmt.Errorf("burn distribution does not start at the bottom of the domain: %v",
				points[0].RangeStart)
		}
		for i := 1; i < len(points); i++ {
			if !points[i].RangeStart.Eq(points[i-1].RangeEnd) {
				return nil, fmt.Errorf("burn distribution has a gap or overlap between points %d and %d: [..., %v) vs [%v, ...)",
					i-1, i, points[i-1].RangeEnd, points[i].RangeStart)
			}
		}
		if !points[len(points)-1].RangeEnd.Eq(MaxRangeValue()) {
			return nil, fmt.Errorf("burn distribution does not cover the top of the domain: %v",
				points[len(points)-1].RangeEnd)
		}
	}

	return &BurnDistribution{points: points}, nil
}

// MakeBurnDistribution builds the weight-proportional burn distribution for
// one block's commits, in commit order.  Each candidate receives a slice of
// the domain proportional to its share of the block's burns; range math is
// carried out in full precision so a round whose uint64 accounting would
// overflow still yields well-formed ranges (the builder then skips the round
// on its own overflow check).
func MakeBurnDistribution(commits []*wire.MsgBlockCommit) (*BurnDistribution, error) {
	if len(commits) == 0 {
		return NewBurnDistribution(nil)
	}

	total := new(big.Int)
	for _, c := range commits {
		total.Add(total, new(big.Int).SetUint64(c.BurnFee))
	}

	points := make([]BurnSamplePoint, 0, len(commits))
	if total.Sign() == 0 {
		// No one burned.  The distribution is constructible but can never
		// be sampled.
		for _, c := range commits {
			points = append(points, BurnSamplePoint{
				Burns:      0,
				RangeStart: new(uint256.Int),
				RangeEnd:   new(uint256.Int),
				Candidate:  c,
			})
		}
		return NewBurnDistribution(points)
	}

	// rangeEnd(i) = floor(maxRange * cumulativeBurns(i) / totalBurns).
	// The final candidate's cumulative equals the total, pinning its end
	// to the top of the domain.
	maxRange := new(big.Int).SetBytes(MaxRangeValue().Bytes())
	cumulative := new(big.Int)
	prevEnd := new(uint256.Int)
	for _, c := range commits {
		cumulative.Add(cumulative, new(big.Int).SetUint64(c.BurnFee))

		end := new(big.Int).Mul(maxRange, cumulative)
		end.Div(end, total)
		rangeEnd := new(uint256.Int)
		rangeEnd.SetBytes(end.Bytes())

		points = append(points, BurnSamplePoint{
			Burns:      c.BurnFee,
			RangeStart: prevEnd.Clone(),
			RangeEnd:   rangeEnd,
			Candidate:  c,
		})
		prevEnd = rangeEnd
	}

	return NewBurnDistribution(points)
}

// Len returns the number of candidates.
func (d *BurnDistribution) Len() int {
	return len(d.points)
}

// Point returns the i'th sample point.
func (d *BurnDistribution) Point(i int) *BurnSamplePoint {
	return &d.points[i]
}

// TotalBurns sums the candidates' burn contributions in the uint64
// accounting domain.  The second return value is false if the sum
// overflows; the caller must then treat the round as having no burns.
func (d *BurnDistribution) TotalBurns() (uint64, bool) {
	var total uint64
	for i := range d.points {
		next := total + d.points[i].Burns
		if next < total {
			return 0, false
		}
		total = next
	}
	return total, true
}

func aggregateBurns(points []BurnSamplePoint) *big.Int {
	total := new(big.Int)
	for i := range points {
		total.Add(total, new(big.Int).SetUint64(points[i].Burns))
	}
	return total
}
