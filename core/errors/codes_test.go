package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"connectsphere/native/common"
	"connectsphere/native/content"
	"connectsphere/native/token"
)

func TestClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code Code
		grpc codes.Code
	}{
		{"nil", nil, CodeOK, codes.OK},
		{"paused", common.ErrModulePaused, CodePaused, codes.Unavailable},
		{"wrapped role", fmt.Errorf("%w: moderator", common.ErrUnauthorized), CodeUnauthorized, codes.PermissionDenied},
		{"zero amount", token.ErrInvalidAmount, CodeInvalidArgument, codes.InvalidArgument},
		{"supply", token.ErrSupplyExceeded, CodeInsufficientFunds, codes.ResourceExhausted},
		{"schedule exists", token.ErrScheduleExists, CodeConflict, codes.AlreadyExists},
		{"liked", content.ErrAlreadyLiked, CodeConflict, codes.AlreadyExists},
		{"banned", content.ErrCreatorBanned, CodeUnauthorized, codes.PermissionDenied},
		{"missing content", content.ErrContentNotFound, CodeNotFound, codes.NotFound},
		{"unknown", stderrors.New("disk on fire"), CodeInternal, codes.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, CodeOf(tc.err))
			require.Equal(t, tc.grpc, GRPCCode(tc.err))
		})
	}
}

func TestDistributionErrorClassification(t *testing.T) {
	err := &token.DistributionError{Applied: 2, Index: 2, Err: token.ErrInsufficientBalance}
	require.True(t, IsPartial(err))
	require.Equal(t, CodePartial, CodeOf(err))
	require.Equal(t, codes.ResourceExhausted, GRPCCode(err))

	first := &token.DistributionError{Index: 0, Err: token.ErrInvalidAccount}
	require.False(t, IsPartial(first))
	require.Equal(t, CodeInvalidArgument, CodeOf(first))
	require.False(t, IsPartial(token.ErrInvalidAccount))
}

func TestStatusHidesInternalDetail(t *testing.T) {
	require.NoError(t, Status(nil))

	st, ok := status.FromError(Status(stderrors.New("leveldb: corrupted block")))
	require.True(t, ok)
	require.Equal(t, codes.Internal, st.Code())
	require.Equal(t, "internal error", st.Message())

	st, ok = status.FromError(Status(content.ErrNotOwner))
	require.True(t, ok)
	require.Equal(t, codes.PermissionDenied, st.Code())
	require.Contains(t, st.Message(), "not the content creator")
}
