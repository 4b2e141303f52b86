package content

import (
	"connectsphere/core/events"
	"connectsphere/native/common"
)

// UpdatePlatformFee sets the license fee in basis points.
func (e *Engine) UpdatePlatformFee(newFeeBps uint32, caller [20]byte) error {
	if err := e.mutable(); err != nil {
		return err
	}
	if err := common.RequireRole(e.state, common.RoleAdministrator, caller); err != nil {
		return err
	}
	if newFeeBps > MaxFeeBps {
		return ErrFeeTooHigh
	}
	params, err := e.loadParams()
	if err != nil {
		return err
	}
	previous := params.FeeBps
	params.FeeBps = newFeeBps
	if err := e.storeParams(params); err != nil {
		return err
	}
	e.emit(events.PlatformFeeUpdated{PreviousBps: previous, FeeBps: newFeeBps, Admin: caller, Timestamp: e.now()})
	return nil
}

// SetFeeRecipient changes the account that receives platform fees.
func (e *Engine) SetFeeRecipient(recipient [20]byte, caller [20]byte) error {
	if err := e.mutable(); err != nil {
		return err
	}
	if err := common.RequireRole(e.state, common.RoleAdministrator, caller); err != nil {
		return err
	}
	if isZeroAddress(recipient) {
		return ErrInvalidAccount
	}
	params, err := e.loadParams()
	if err != nil {
		return err
	}
	params.FeeRecipient = recipient
	if err := e.storeParams(params); err != nil {
		return err
	}
	e.emit(events.FeeRecipientUpdated{Recipient: recipient, Admin: caller, Timestamp: e.now()})
	return nil
}

// Params returns the current fee configuration.
func (e *Engine) Params() (Params, error) {
	if err := e.ready(); err != nil {
		return Params{}, err
	}
	return e.loadParams()
}
