package errors

import (
	stderrors "errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"connectsphere/native/common"
	"connectsphere/native/content"
	"connectsphere/native/token"
)

// Code is a stable, machine readable failure class.
type Code string

const (
	CodeOK                Code = "ok"
	CodeInvalidArgument   Code = "invalid_argument"
	CodeUnauthorized      Code = "unauthorized"
	CodeNotFound          Code = "not_found"
	CodeInsufficientFunds Code = "insufficient_funds"
	CodeConflict          Code = "conflict"
	CodePaused            Code = "paused"
	CodePartial           Code = "partial"
	CodeInternal          Code = "internal"
)

type classification struct {
	code Code
	grpc codes.Code
}

// Order matters: the first match wins, and DistributionError wraps the
// failure of its last transfer.
var table = []struct {
	target error
	class  classification
}{
	{common.ErrModulePaused, classification{CodePaused, codes.Unavailable}},
	{common.ErrUnauthorized, classification{CodeUnauthorized, codes.PermissionDenied}},
	{common.ErrLastAdministrator, classification{CodeConflict, codes.FailedPrecondition}},
	{common.ErrUnknownRole, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{common.ErrUnknownModule, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{common.ErrInvalidAccount, classification{CodeInvalidArgument, codes.InvalidArgument}},

	{token.ErrInvalidAmount, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{token.ErrInvalidAccount, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{token.ErrInvalidBeneficiary, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{token.ErrInvalidDuration, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{token.ErrLengthMismatch, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{token.ErrSupplyExceeded, classification{CodeInsufficientFunds, codes.ResourceExhausted}},
	{token.ErrInsufficientBalance, classification{CodeInsufficientFunds, codes.ResourceExhausted}},
	{token.ErrScheduleExists, classification{CodeConflict, codes.AlreadyExists}},
	{token.ErrNoSchedule, classification{CodeNotFound, codes.NotFound}},
	{token.ErrNothingToRelease, classification{CodeConflict, codes.FailedPrecondition}},
	{token.ErrHoldingNotSet, classification{CodeInternal, codes.FailedPrecondition}},

	{content.ErrEmptyReference, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{content.ErrInvalidAccount, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{content.ErrInvalidLicensee, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{content.ErrNoPayment, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{content.ErrFeeTooHigh, classification{CodeInvalidArgument, codes.InvalidArgument}},
	{content.ErrContentNotFound, classification{CodeNotFound, codes.NotFound}},
	{content.ErrLicenseNotFound, classification{CodeNotFound, codes.NotFound}},
	{content.ErrContentInactive, classification{CodeConflict, codes.FailedPrecondition}},
	{content.ErrCreatorBanned, classification{CodeUnauthorized, codes.PermissionDenied}},
	{content.ErrNotOwner, classification{CodeUnauthorized, codes.PermissionDenied}},
	{content.ErrSelfLike, classification{CodeUnauthorized, codes.PermissionDenied}},
	{content.ErrAlreadyLiked, classification{CodeConflict, codes.AlreadyExists}},
	{content.ErrAlreadyReported, classification{CodeConflict, codes.AlreadyExists}},
	{content.ErrAlreadyVerified, classification{CodeConflict, codes.AlreadyExists}},
	{content.ErrAlreadyBanned, classification{CodeConflict, codes.AlreadyExists}},
	{content.ErrInsufficientEscrow, classification{CodeInsufficientFunds, codes.ResourceExhausted}},
	{content.ErrFeeRecipientNotSet, classification{CodeInternal, codes.FailedPrecondition}},
	{content.ErrEscrowNotSet, classification{CodeInternal, codes.FailedPrecondition}},
}

func classify(err error) classification {
	if err == nil {
		return classification{CodeOK, codes.OK}
	}
	class := classification{CodeInternal, codes.Internal}
	for _, entry := range table {
		if stderrors.Is(err, entry.target) {
			class = entry.class
			break
		}
	}
	// A partial batch keeps the gRPC code of the transfer that stopped it.
	if IsPartial(err) {
		class.code = CodePartial
	}
	return class
}

// CodeOf returns the failure class of err. Unrecognised errors are internal.
func CodeOf(err error) Code {
	return classify(err).code
}

// GRPCCode returns the gRPC status code the API layer should report for err.
func GRPCCode(err error) codes.Code {
	return classify(err).grpc
}

// IsPartial reports whether err describes an operation whose leading
// effects were committed before it failed.
func IsPartial(err error) bool {
	var partial *token.DistributionError
	return stderrors.As(err, &partial) && partial.Applied > 0
}

// Status converts err to a gRPC status error. Internal failures are reported
// without their message.
func Status(err error) error {
	if err == nil {
		return nil
	}
	class := classify(err)
	if class.grpc == codes.Internal {
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(class.grpc, err.Error())
}
