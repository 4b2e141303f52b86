package content

import (
	"math/big"

	"github.com/holiman/uint256"
)

// splitPayment divides a license payment into the platform fee and the
// creator's share. The fee is rounded down and the creator receives the
// remainder, so fee + remainder always equals payment.
func splitPayment(payment *big.Int, feeBps uint32) (fee *big.Int, remainder *big.Int) {
	if payment == nil || payment.Sign() <= 0 {
		return big.NewInt(0), big.NewInt(0)
	}
	if amount, overflow := uint256.FromBig(payment); !overflow {
		if computed, overflow := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(uint64(feeBps)), uint256.NewInt(BpsDenominator)); !overflow {
			fee = computed.ToBig()
		}
	}
	if fee == nil {
		fee = new(big.Int).Mul(payment, big.NewInt(int64(feeBps)))
		fee.Quo(fee, big.NewInt(BpsDenominator))
	}
	remainder = new(big.Int).Sub(payment, fee)
	return fee, remainder
}

// applyPenalty subtracts penalty from reputation, stopping at zero.
func applyPenalty(reputation, penalty uint64) uint64 {
	if reputation < penalty {
		return 0
	}
	return reputation - penalty
}
