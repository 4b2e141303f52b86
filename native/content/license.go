package content

import (
	"fmt"
	"math/big"

	"connectsphere/core/events"
)

// CreateLicense issues a paid license on an active item. Only the item's
// creator may issue it. The payment is drawn from the escrow account: the
// platform fee goes to the fee recipient first, then the remainder to the
// creator.
func (e *Engine) CreateLicense(contentID uint64, licensee [20]byte, duration uint64, isExclusive bool, payment *big.Int, caller [20]byte) (*License, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	if e.ledger == nil {
		return nil, errNilLedger
	}
	item, err := e.activeContent(contentID)
	if err != nil {
		return nil, err
	}
	if caller != item.Creator {
		return nil, ErrNotOwner
	}
	if isZeroAddress(licensee) {
		return nil, ErrInvalidLicensee
	}
	if payment == nil || payment.Sign() <= 0 {
		return nil, ErrNoPayment
	}
	params, err := e.loadParams()
	if err != nil {
		return nil, err
	}
	if isZeroAddress(params.FeeRecipient) {
		return nil, ErrFeeRecipientNotSet
	}
	if isZeroAddress(e.escrow) {
		return nil, ErrEscrowNotSet
	}
	escrowed, err := e.ledger.BalanceOf(e.escrow)
	if err != nil {
		return nil, err
	}
	if escrowed.Cmp(payment) < 0 {
		return nil, fmt.Errorf("%w: escrow holds %s, payment is %s", ErrInsufficientEscrow, escrowed, payment)
	}
	platformFee, creatorPayment := splitPayment(payment, params.FeeBps)
	if platformFee.Sign() > 0 {
		if err := e.ledger.Transfer(e.escrow, params.FeeRecipient, platformFee); err != nil {
			return nil, err
		}
	}
	if err := e.ledger.Transfer(e.escrow, item.Creator, creatorPayment); err != nil {
		return nil, err
	}
	id, err := e.nextID(nextLicenseIDKey)
	if err != nil {
		return nil, err
	}
	license := &License{
		ID:          id,
		ContentID:   contentID,
		Licensee:    licensee,
		Price:       new(big.Int).Set(payment),
		Duration:    duration,
		StartTime:   e.nowUnsigned(),
		IsExclusive: isExclusive,
		IsActive:    true,
	}
	if err := e.state.KVPut(licenseKey(id), license); err != nil {
		return nil, err
	}
	if err := e.appendID(contentLicensesKey(contentID), id); err != nil {
		return nil, err
	}
	e.emit(events.LicenseCreated{
		LicenseID:      id,
		ContentID:      contentID,
		Licensee:       licensee,
		Price:          new(big.Int).Set(payment),
		PlatformFee:    platformFee,
		CreatorPayment: creatorPayment,
		Duration:       duration,
		Exclusive:      isExclusive,
		StartTime:      license.StartTime,
		Timestamp:      e.now(),
	})
	return license.Clone(), nil
}

// License returns the stored license.
func (e *Engine) License(id uint64) (*License, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	license, ok, err := e.loadLicense(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLicenseNotFound
	}
	return license, nil
}

// IsLicenseValid reports whether the license is active and unexpired.
// Unknown licenses are reported as invalid.
func (e *Engine) IsLicenseValid(id uint64) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	license, ok, err := e.loadLicense(id)
	if err != nil || !ok {
		return false, err
	}
	return license.ValidAt(e.nowUnsigned()), nil
}

// ContentLicenses lists the license ids issued against a content item.
func (e *Engine) ContentLicenses(contentID uint64) ([]uint64, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.loadIDs(contentLicensesKey(contentID))
}
