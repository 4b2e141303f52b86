package content

import "errors"

var (
	errNilState  = errors.New("content registry: state not configured")
	errNilLedger = errors.New("content registry: ledger not configured")

	ErrEmptyReference     = errors.New("content: content reference required")
	ErrInvalidAccount     = errors.New("content: account must not be zero")
	ErrContentNotFound    = errors.New("content: content not found")
	ErrContentInactive    = errors.New("content: content inactive")
	ErrAlreadyLiked       = errors.New("content: already liked")
	ErrSelfLike           = errors.New("content: creators cannot like their own content")
	ErrAlreadyReported    = errors.New("content: already reported")
	ErrCreatorBanned      = errors.New("content: creator banned")
	ErrAlreadyBanned      = errors.New("content: creator already banned")
	ErrAlreadyVerified    = errors.New("content: creator already verified")
	ErrNotOwner           = errors.New("content: caller is not the content creator")
	ErrInvalidLicensee    = errors.New("content: invalid licensee")
	ErrNoPayment          = errors.New("content: payment required")
	ErrFeeTooHigh         = errors.New("content: platform fee exceeds ceiling")
	ErrFeeRecipientNotSet = errors.New("content: fee recipient not configured")
	ErrEscrowNotSet       = errors.New("content: license escrow not configured")
	ErrLicenseNotFound    = errors.New("content: license not found")
	ErrInsufficientEscrow = errors.New("content: escrow balance below payment")
)
