package rng_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/rng"
	rngmock "github.com/KirkDiggler/nyanko-battle/internal/pkg/rng/mock"
)

type RNGTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *rngmock.MockRoller
}

func TestRNGSuite(t *testing.T) {
	suite.Run(t, new(RNGTestSuite))
}

func (s *RNGTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = rngmock.NewMockRoller(s.ctrl)
}

func (s *RNGTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RNGTestSuite) TestSameSeedSameSequence() {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	for i := 0; i < 50; i++ {
		ra, err := a.Roll(100)
		s.Require().NoError(err)
		rb, err := b.Roll(100)
		s.Require().NoError(err)
		s.Assert().Equal(ra, rb)
	}

	na, err := a.RollN(10, 6)
	s.Require().NoError(err)
	nb, err := b.RollN(10, 6)
	s.Require().NoError(err)
	s.Assert().Equal(na, nb)
	s.Assert().Equal(int64(42), a.Seed())
}

func (s *RNGTestSuite) TestRollStaysInRange() {
	r := rng.NewSeeded(7)
	for i := 0; i < 500; i++ {
		v, err := r.Roll(6)
		s.Require().NoError(err)
		s.Assert().GreaterOrEqual(v, 1)
		s.Assert().LessOrEqual(v, 6)
	}
}

func (s *RNGTestSuite) TestInvalidSize() {
	r := rng.NewSeeded(1)

	_, err := r.Roll(0)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = r.RollN(-1, 6)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = r.RollN(2, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RNGTestSuite) TestChance() {
	s.mockRoller.EXPECT().Roll(10000).Return(500, nil)
	ok, err := rng.Chance(s.mockRoller, 0.05)
	s.Require().NoError(err)
	s.Assert().True(ok)

	s.mockRoller.EXPECT().Roll(10000).Return(501, nil)
	ok, err = rng.Chance(s.mockRoller, 0.05)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *RNGTestSuite) TestChanceRoundsThreshold() {
	// 0.57 * 10000 is 5699.999... in float64
	s.mockRoller.EXPECT().Roll(10000).Return(5700, nil)
	ok, err := rng.Chance(s.mockRoller, 0.57)
	s.Require().NoError(err)
	s.Assert().True(ok)

	s.mockRoller.EXPECT().Roll(10000).Return(5701, nil)
	ok, err = rng.Chance(s.mockRoller, 0.57)
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *RNGTestSuite) TestCertainOutcomesDoNotRoll() {
	ok, err := rng.Chance(s.mockRoller, 0)
	s.Require().NoError(err)
	s.Assert().False(ok)

	ok, err = rng.Chance(s.mockRoller, 1)
	s.Require().NoError(err)
	s.Assert().True(ok)

	ok, err = rng.Percent(s.mockRoller, 100)
	s.Require().NoError(err)
	s.Assert().True(ok)

	idx, err := rng.Pick(s.mockRoller, 1)
	s.Require().NoError(err)
	s.Assert().Equal(0, idx)
}

func (s *RNGTestSuite) TestPercentAndPick() {
	s.mockRoller.EXPECT().Roll(100).Return(60, nil)
	ok, err := rng.Percent(s.mockRoller, 60)
	s.Require().NoError(err)
	s.Assert().True(ok)

	s.mockRoller.EXPECT().Roll(3).Return(3, nil)
	idx, err := rng.Pick(s.mockRoller, 3)
	s.Require().NoError(err)
	s.Assert().Equal(2, idx)

	_, err = rng.Pick(s.mockRoller, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RNGTestSuite) TestRollErrorIsWrapped() {
	s.mockRoller.EXPECT().Roll(100).Return(0, errors.Internal("dice jammed"))
	_, err := rng.Percent(s.mockRoller, 50)
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
}
