package cognito

import "context"

// Client is the subset of the Cognito user pool API the auth routes need.
type Client interface {
	SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error
	Login(ctx context.Context, input LoginInput) (Tokens, error)
	RefreshTokens(ctx context.Context, input RefreshInput) (Tokens, error)
}

type SignUpInput struct {
	Email    string
	Password string
}

type SignUpOutput struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the email only to derive SECRET_HASH.
type RefreshInput struct {
	Email        string
	RefreshToken string
}

// Tokens is what the client UI stores after login. The ID token is the
// credential accepted by the auth middleware.
type Tokens struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}
