package content

import (
	"connectsphere/core/events"
	"connectsphere/native/common"
)

// CreateContent registers a new content item for creator and returns it.
// Identifiers start at zero and are never reused.
func (e *Engine) CreateContent(creator [20]byte, contentRef string, contentType string) (*Content, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	if contentRef == "" {
		return nil, ErrEmptyReference
	}
	if isZeroAddress(creator) {
		return nil, ErrInvalidAccount
	}
	record, err := e.loadCreator(creator)
	if err != nil {
		return nil, err
	}
	if record.IsBanned {
		return nil, ErrCreatorBanned
	}
	id, err := e.nextID(nextContentIDKey)
	if err != nil {
		return nil, err
	}
	item := &Content{
		ID:          id,
		Creator:     creator,
		ContentRef:  contentRef,
		ContentType: contentType,
		Timestamp:   e.nowUnsigned(),
		IsActive:    true,
	}
	if err := e.storeContent(item); err != nil {
		return nil, err
	}
	if err := e.appendID(creatorIndexKey(creator), id); err != nil {
		return nil, err
	}
	record.TotalContent++
	if err := e.storeCreator(record); err != nil {
		return nil, err
	}
	e.emit(events.ContentCreated{
		ID:          id,
		Creator:     creator,
		ContentRef:  item.ContentRef,
		ContentType: item.ContentType,
		Timestamp:   e.now(),
	})
	return item, nil
}

// activeContent loads the item and rejects inactive ones.
func (e *Engine) activeContent(id uint64) (*Content, error) {
	item, err := e.loadContent(id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrContentInactive
	}
	return item, nil
}

// LikeContent records a like from caller. Each account may like an item once
// and creators may not like their own content.
func (e *Engine) LikeContent(id uint64, caller [20]byte) (*Content, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	item, err := e.activeContent(id)
	if err != nil {
		return nil, err
	}
	liked, err := e.flag(likedKey(id, caller))
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, ErrAlreadyLiked
	}
	if caller == item.Creator {
		return nil, ErrSelfLike
	}
	record, err := e.loadCreator(item.Creator)
	if err != nil {
		return nil, err
	}
	item.Likes++
	record.TotalLikes++
	record.Reputation += likeReputation
	if err := e.state.KVPut(likedKey(id, caller), true); err != nil {
		return nil, err
	}
	if err := e.storeContent(item); err != nil {
		return nil, err
	}
	if err := e.storeCreator(record); err != nil {
		return nil, err
	}
	e.emit(events.ContentLiked{ID: id, Creator: item.Creator, Liker: caller, Likes: item.Likes, Timestamp: e.now()})
	return item, nil
}

// ShareContent counts a share. Shares are not deduplicated.
func (e *Engine) ShareContent(id uint64, caller [20]byte) (*Content, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	item, err := e.activeContent(id)
	if err != nil {
		return nil, err
	}
	record, err := e.loadCreator(item.Creator)
	if err != nil {
		return nil, err
	}
	item.Shares++
	record.TotalShares++
	record.Reputation += shareReputation
	if err := e.storeContent(item); err != nil {
		return nil, err
	}
	if err := e.storeCreator(record); err != nil {
		return nil, err
	}
	e.emit(events.ContentShared{ID: id, Creator: item.Creator, Sharer: caller, Shares: item.Shares, Timestamp: e.now()})
	return item, nil
}

// ReportContent records a report from caller. The report that brings the
// count to ReportThreshold deactivates the item in the same call.
func (e *Engine) ReportContent(id uint64, caller [20]byte, reason string) (*Content, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	item, err := e.activeContent(id)
	if err != nil {
		return nil, err
	}
	reported, err := e.flag(reportedKey(id, caller))
	if err != nil {
		return nil, err
	}
	if reported {
		return nil, ErrAlreadyReported
	}
	item.Reports++
	if item.Reports >= ReportThreshold {
		item.IsActive = false
	}
	if err := e.state.KVPut(reportedKey(id, caller), true); err != nil {
		return nil, err
	}
	if err := e.storeContent(item); err != nil {
		return nil, err
	}
	e.emit(events.ContentReported{ID: id, Reporter: caller, Reason: reason, Reports: item.Reports, Timestamp: e.now()})
	if !item.IsActive {
		record, err := e.loadCreator(item.Creator)
		if err != nil {
			return nil, err
		}
		e.emit(events.ContentModerated{
			ID:         id,
			Creator:    item.Creator,
			Automatic:  true,
			Reputation: record.Reputation,
			Timestamp:  e.now(),
		})
	}
	return item, nil
}

// RemoveContent lets a moderator deactivate an item. The creator loses
// reputation, floored at zero.
func (e *Engine) RemoveContent(id uint64, moderator [20]byte) (*Content, error) {
	if err := e.mutable(); err != nil {
		return nil, err
	}
	if err := common.RequireRole(e.state, common.RoleModerator, moderator); err != nil {
		return nil, err
	}
	item, err := e.activeContent(id)
	if err != nil {
		return nil, err
	}
	record, err := e.loadCreator(item.Creator)
	if err != nil {
		return nil, err
	}
	item.IsActive = false
	record.Reputation = applyPenalty(record.Reputation, removalPenalty)
	if err := e.storeContent(item); err != nil {
		return nil, err
	}
	if err := e.storeCreator(record); err != nil {
		return nil, err
	}
	e.emit(events.ContentModerated{
		ID:         id,
		Creator:    item.Creator,
		Moderator:  moderator,
		Reputation: record.Reputation,
		Timestamp:  e.now(),
	})
	return item, nil
}
