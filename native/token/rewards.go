package token

import (
	"math/big"
	"strings"

	"connectsphere/core/events"
	"connectsphere/native/common"
)

// DistributeRewards pays amounts[i] to recipients[i] out of the holding
// balance. Each transfer stands on its own: when one fails the batch stops
// and a *DistributionError reports how many transfers were applied before it.
func (e *Engine) DistributeRewards(caller [20]byte, recipients [][20]byte, amounts []*big.Int, reason string) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := common.Guard(e.state, common.ModuleToken); err != nil {
		return err
	}
	if err := common.RequireRole(e.state, common.RoleAdministrator, caller); err != nil {
		return err
	}
	if len(recipients) != len(amounts) {
		return ErrLengthMismatch
	}
	if len(recipients) == 0 {
		return nil
	}
	if isZeroAddress(e.holding) {
		return ErrHoldingNotSet
	}
	reason = strings.TrimSpace(reason)
	for i, recipient := range recipients {
		if err := e.move(e.holding, recipient, amounts[i]); err != nil {
			return &DistributionError{Applied: i, Index: i, Recipient: recipient, Err: err}
		}
		e.emit(events.RewardDistributed{
			Recipient: recipient,
			Amount:    newBigInt(amounts[i]),
			Reason:    reason,
			Timestamp: e.now(),
		})
	}
	return nil
}
