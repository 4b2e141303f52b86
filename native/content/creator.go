package content

import (
	"connectsphere/core/events"
	"connectsphere/native/common"
)

// VerifyCreator marks the creator verified and grants the verification
// reputation bonus.
func (e *Engine) VerifyCreator(creator [20]byte, caller [20]byte) (*Creator, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	if err := common.RequireRole(e.state, common.RoleValidator, caller); err != nil {
		return nil, err
	}
	if isZeroAddress(creator) {
		return nil, ErrInvalidAccount
	}
	record, err := e.loadCreator(creator)
	if err != nil {
		return nil, err
	}
	if record.IsVerified {
		return nil, ErrAlreadyVerified
	}
	if record.IsBanned {
		return nil, ErrCreatorBanned
	}
	record.IsVerified = true
	record.Reputation += verificationReputation
	if err := e.storeCreator(record); err != nil {
		return nil, err
	}
	e.emit(events.CreatorVerified{Creator: creator, Validator: caller, Reputation: record.Reputation, Timestamp: e.now()})
	return record, nil
}

// BanCreator bans the creator permanently and deactivates every item of
// theirs that is still active.
func (e *Engine) BanCreator(creator [20]byte, reason string, caller [20]byte) (*Creator, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	if err := common.RequireRole(e.state, common.RoleModerator, caller); err != nil {
		return nil, err
	}
	if isZeroAddress(creator) {
		return nil, ErrInvalidAccount
	}
	record, err := e.loadCreator(creator)
	if err != nil {
		return nil, err
	}
	if record.IsBanned {
		return nil, ErrAlreadyBanned
	}
	record.IsBanned = true
	if err := e.storeCreator(record); err != nil {
		return nil, err
	}
	ids, err := e.loadIDs(creatorIndexKey(creator))
	if err != nil {
		return nil, err
	}
	var deactivated uint64
	for _, id := range ids {
		item, err := e.loadContent(id)
		if err != nil {
			return nil, err
		}
		if !item.IsActive {
			continue
		}
		item.IsActive = false
		if err := e.storeContent(item); err != nil {
			return nil, err
		}
		deactivated++
	}
	e.emit(events.CreatorBanned{
		Creator:     creator,
		Moderator:   caller,
		Reason:      reason,
		Deactivated: deactivated,
		Timestamp:   e.now(),
	})
	return record, nil
}
