package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "battle not found",
			expected: "NOT_FOUND: battle not found",
		},
		{
			name:     "action not allowed error",
			code:     errors.CodeActionNotAllowed,
			message:  "skill on cooldown",
			expected: "ACTION_NOT_ALLOWED: skill on cooldown",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.ActionNotAllowed("skill on cooldown").
		WithMeta("actor_id", "tama").
		WithMeta("skill_id", "nekopunch")

	s.Assert().Equal("tama", err.Meta["actor_id"])
	s.Assert().Equal("nekopunch", err.Meta["skill_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection failed")
	wrapped := errors.Wrap(baseErr, "failed to save battle")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to save battle", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.InvalidBattleState("battle has not started")
	wrapped := errors.Wrap(baseErr, "advance round")

	s.Assert().Equal(errors.CodeInvalidBattleState, wrapped.Code)
	s.Assert().Equal("advance round", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCodeKeepsMeta() {
	baseErr := errors.NotFound("record missing").WithMeta("battle_id", "b1")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "store unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("b1", wrapped.Meta["battle_id"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestBattleConstructors() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
		check       func(error) bool
	}{
		{"ActionNotAllowed", func() *errors.Error { return errors.ActionNotAllowed("test") }, errors.CodeActionNotAllowed, errors.IsActionNotAllowed},
		{"InvalidBattleState", func() *errors.Error { return errors.InvalidBattleState("test") }, errors.CodeInvalidBattleState, errors.IsInvalidBattleState},
		{"MalformedRoster", func() *errors.Error { return errors.MalformedRoster("test") }, errors.CodeMalformedRoster, errors.IsMalformedRoster},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
			s.Assert().True(tc.check(err))
			s.Assert().True(tc.check(errors.Wrap(err, "wrapped")))
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.ActionNotAllowedf("skill %s is on cooldown for %d rounds", "fireball", 2)
	s.Assert().Equal(errors.CodeActionNotAllowed, err.Code)
	s.Assert().Equal("skill fireball is on cooldown for 2 rounds", err.Message)

	err2 := errors.MalformedRosterf("duplicate combatant id %q", "tama")
	s.Assert().Equal(errors.CodeMalformedRoster, err2.Code)
	s.Assert().Equal(`duplicate combatant id "tama"`, err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.InvalidBattleState("a")
	err2 := errors.InvalidBattleState("b")
	err3 := errors.ActionNotAllowed("a")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestGRPCRoundTripKeepsBattleCode() {
	err := errors.ActionNotAllowed("target is already defeated").
		WithMeta("target_id", "mike")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.FailedPrecondition, st.Code())
	s.Assert().Equal("target is already defeated", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().True(errors.IsActionNotAllowed(back))
	s.Assert().Equal("mike", errors.GetMeta(back)["target_id"])
}

func (s *ErrorsTestSuite) TestFromPlainGRPCError() {
	grpcErr := status.Error(codes.InvalidArgument, "invalid input")
	err := errors.FromGRPCError(grpcErr)
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(err))
	s.Assert().Equal("invalid input", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeMalformedRoster, codes.InvalidArgument},
		{errors.CodeActionNotAllowed, codes.FailedPrecondition},
		{errors.CodeInvalidBattleState, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
