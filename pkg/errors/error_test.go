package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidTimeframe, "unsupported timeframe: %s", "2w")
	suite.Equal(ErrCodeInvalidTimeframe, err.Code)
	suite.Equal("unsupported timeframe: 2w", err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeUpstreamFetchFailed, "coingecko request failed", cause)
	suite.Equal(ErrCodeUpstreamFetchFailed, err.Code)
	suite.Equal(cause, err.Cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("unexpected token")
	err := Wrapf(ErrCodeUpstreamParseFailed, cause, "malformed payload for %s", "btc")
	suite.Equal("malformed payload for btc", err.Message)
	suite.Equal("[702] malformed payload for btc: unexpected token", err.Error())
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeAllProvidersExhausted, "no provider returned data")
	suite.Equal("[800] no provider returned data", err.Error())
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	inner := New(ErrCodeUpstreamRateLimited, "429")
	wrapped := fmt.Errorf("fetch: %w", inner)
	suite.Equal(ErrCodeUpstreamRateLimited, GetCode(wrapped))
	suite.True(IsRateLimited(wrapped))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.False(HasCode(errors.New("plain"), ErrCodeUpstreamRateLimited))
	suite.False(IsRateLimited(nil))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("root")
	err := Wrap(ErrCodeExportFailed, "export", cause)
	suite.True(Is(err, cause))

	var target *Error
	suite.True(As(err, &target))
	suite.Equal(ErrCodeExportFailed, target.Code)
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataErrorf(30, 12, "btc", "need %d rows, got %d", 30, 12)
	suite.Equal("need 30 rows, got 12", err.Error())
	suite.Equal(30, err.Required)
	suite.Equal(12, err.Actual)
	suite.True(IsInsufficientDataError(fmt.Errorf("window: %w", err)))
	suite.False(IsInsufficientDataError(New(ErrCodeEmptySeries, "empty")))

	plain := NewInsufficientDataError(5, 1, "", "short")
	suite.Equal("short", plain.Error())
}

func (suite *ErrorTestSuite) TestCategory() {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeUnknown, "general"},
		{ErrCodeInvalidConfiguration, "validation"},
		{ErrCodeInsufficientData, "data"},
		{ErrCodeUpstreamTimeout, "upstream"},
		{ErrCodeBacktestInputInvalid, "pipeline"},
	}

	for _, tc := range tests {
		suite.Run(tc.expected, func() {
			suite.Equal(tc.expected, tc.code.Category())
		})
	}
}
