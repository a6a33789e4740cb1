package docapi

import (
	"context"
	"net/http"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

type generateOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
}

type validateOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
	OTP          string `json:"otp"`
}

type validateOTPData struct {
	Token string `json:"token"`
}

// GenerateOTP asks the server to send an OTP to mobile.
func (c *Client) GenerateOTP(ctx context.Context, mobile string) error {
	_, err := c.postJSON(ctx, endpointGenerateOTP, "", generateOTPRequest{MobileNumber: mobile})
	return err
}

// ValidateOTP exchanges mobile and otp for a session token.
func (c *Client) ValidateOTP(ctx context.Context, mobile, otp string) (string, error) {
	env, err := c.postJSON(ctx, endpointValidateOTP, "", validateOTPRequest{MobileNumber: mobile, OTP: otp})
	if err != nil {
		return "", err
	}

	var data validateOTPData
	if err := decodeData(env, &data); err != nil {
		return "", err
	}
	if data.Token == "" {
		// A 2xx without a token is a rejected OTP, not a transport failure.
		return "", &domain.APIError{Status: http.StatusOK, Message: env.Message, Err: domain.ErrMissingToken}
	}
	return data.Token, nil
}
