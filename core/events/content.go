package events

import (
	"math/big"

	"connectsphere/core/types"
)

const (
	TypeContentCreated      = "content.created"
	TypeContentLiked        = "content.liked"
	TypeContentShared       = "content.shared"
	TypeContentReported     = "content.reported"
	TypeContentModerated    = "content.moderated"
	TypeLicenseCreated      = "content.license.created"
	TypeCreatorVerified     = "creator.verified"
	TypeCreatorBanned       = "creator.banned"
	TypePlatformFeeUpdated  = "registry.fee.updated"
	TypeFeeRecipientUpdated = "registry.fee_recipient.updated"
)

// ContentCreated announces a newly registered content item.
type ContentCreated struct {
	ID          uint64
	Creator     [20]byte
	ContentRef  string
	ContentType string
	Timestamp   int64
}

func (ContentCreated) EventType() string { return TypeContentCreated }

func (e ContentCreated) Event() *types.Event {
	return &types.Event{
		Type: TypeContentCreated,
		Attributes: map[string]string{
			"contentId":   uintToString(e.ID),
			"creator":     addr(e.Creator),
			"contentRef":  e.ContentRef,
			"contentType": e.ContentType,
			"timestamp":   intToString(e.Timestamp),
		},
	}
}

// ContentLiked records an accepted like.
type ContentLiked struct {
	ID        uint64
	Creator   [20]byte
	Liker     [20]byte
	Likes     uint64
	Timestamp int64
}

func (ContentLiked) EventType() string { return TypeContentLiked }

func (e ContentLiked) Event() *types.Event {
	return &types.Event{
		Type: TypeContentLiked,
		Attributes: map[string]string{
			"contentId": uintToString(e.ID),
			"creator":   addr(e.Creator),
			"liker":     addr(e.Liker),
			"likes":     uintToString(e.Likes),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

// ContentShared records a share.
type ContentShared struct {
	ID        uint64
	Creator   [20]byte
	Sharer    [20]byte
	Shares    uint64
	Timestamp int64
}

func (ContentShared) EventType() string { return TypeContentShared }

func (e ContentShared) Event() *types.Event {
	return &types.Event{
		Type: TypeContentShared,
		Attributes: map[string]string{
			"contentId": uintToString(e.ID),
			"creator":   addr(e.Creator),
			"sharer":    addr(e.Sharer),
			"shares":    uintToString(e.Shares),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

// ContentReported records an accepted report.
type ContentReported struct {
	ID        uint64
	Reporter  [20]byte
	Reason    string
	Reports   uint64
	Timestamp int64
}

func (ContentReported) EventType() string { return TypeContentReported }

func (e ContentReported) Event() *types.Event {
	return &types.Event{
		Type: TypeContentReported,
		Attributes: map[string]string{
			"contentId": uintToString(e.ID),
			"reporter":  addr(e.Reporter),
			"reason":    e.Reason,
			"reports":   uintToString(e.Reports),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

// ContentModerated records the Active -> Inactive transition of a single item.
// Automatic transitions carry no moderator.
type ContentModerated struct {
	ID         uint64
	Creator    [20]byte
	Moderator  [20]byte
	Automatic  bool
	Reputation uint64
	Timestamp  int64
}

func (ContentModerated) EventType() string { return TypeContentModerated }

func (e ContentModerated) Event() *types.Event {
	attrs := map[string]string{
		"contentId":  uintToString(e.ID),
		"creator":    addr(e.Creator),
		"automatic":  boolToString(e.Automatic),
		"reputation": uintToString(e.Reputation),
		"timestamp":  intToString(e.Timestamp),
	}
	if e.Automatic {
		attrs["moderator"] = "system"
	} else {
		attrs["moderator"] = addr(e.Moderator)
	}
	return &types.Event{Type: TypeContentModerated, Attributes: attrs}
}

// LicenseCreated records a paid license and its fee split.
type LicenseCreated struct {
	LicenseID      uint64
	ContentID      uint64
	Licensee       [20]byte
	Price          *big.Int
	PlatformFee    *big.Int
	CreatorPayment *big.Int
	Duration       uint64
	Exclusive      bool
	StartTime      uint64
	Timestamp      int64
}

func (LicenseCreated) EventType() string { return TypeLicenseCreated }

func (e LicenseCreated) Event() *types.Event {
	return &types.Event{
		Type: TypeLicenseCreated,
		Attributes: map[string]string{
			"licenseId":      uintToString(e.LicenseID),
			"contentId":      uintToString(e.ContentID),
			"licensee":       addr(e.Licensee),
			"price":          formatAmount(e.Price),
			"platformFee":    formatAmount(e.PlatformFee),
			"creatorPayment": formatAmount(e.CreatorPayment),
			"duration":       uintToString(e.Duration),
			"exclusive":      boolToString(e.Exclusive),
			"startTime":      uintToString(e.StartTime),
			"timestamp":      intToString(e.Timestamp),
		},
	}
}

// CreatorVerified records a validator verifying a creator.
type CreatorVerified struct {
	Creator    [20]byte
	Validator  [20]byte
	Reputation uint64
	Timestamp  int64
}

func (CreatorVerified) EventType() string { return TypeCreatorVerified }

func (e CreatorVerified) Event() *types.Event {
	return &types.Event{
		Type: TypeCreatorVerified,
		Attributes: map[string]string{
			"creator":    addr(e.Creator),
			"validator":  addr(e.Validator),
			"reputation": uintToString(e.Reputation),
			"timestamp":  intToString(e.Timestamp),
		},
	}
}

// CreatorBanned records a ban together with the number of items it
// deactivated.
type CreatorBanned struct {
	Creator     [20]byte
	Moderator   [20]byte
	Reason      string
	Deactivated uint64
	Timestamp   int64
}

func (CreatorBanned) EventType() string { return TypeCreatorBanned }

func (e CreatorBanned) Event() *types.Event {
	return &types.Event{
		Type: TypeCreatorBanned,
		Attributes: map[string]string{
			"creator":     addr(e.Creator),
			"moderator":   addr(e.Moderator),
			"reason":      e.Reason,
			"deactivated": uintToString(e.Deactivated),
			"timestamp":   intToString(e.Timestamp),
		},
	}
}

// PlatformFeeUpdated records a fee change.
type PlatformFeeUpdated struct {
	PreviousBps uint32
	FeeBps      uint32
	Admin       [20]byte
	Timestamp   int64
}

func (PlatformFeeUpdated) EventType() string { return TypePlatformFeeUpdated }

func (e PlatformFeeUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypePlatformFeeUpdated,
		Attributes: map[string]string{
			"previousBps": uintToString(uint64(e.PreviousBps)),
			"feeBps":      uintToString(uint64(e.FeeBps)),
			"admin":       addr(e.Admin),
			"timestamp":   intToString(e.Timestamp),
		},
	}
}

// FeeRecipientUpdated records a change of the platform fee recipient.
type FeeRecipientUpdated struct {
	Recipient [20]byte
	Admin     [20]byte
	Timestamp int64
}

func (FeeRecipientUpdated) EventType() string { return TypeFeeRecipientUpdated }

func (e FeeRecipientUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeFeeRecipientUpdated,
		Attributes: map[string]string{
			"recipient": addr(e.Recipient),
			"admin":     addr(e.Admin),
			"timestamp": intToString(e.Timestamp),
		},
	}
}
