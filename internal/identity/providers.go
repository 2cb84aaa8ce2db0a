package identity

import "fmt"

// FirebaseJWKSURL publishes the keys that sign Firebase Authentication ID tokens.
const FirebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// FirebaseIssuer returns the expected issuer for ID tokens of the given project.
func FirebaseIssuer(projectID string) string {
	return "https://securetoken.google.com/" + projectID
}

// NewFirebaseVerifier verifies Firebase ID tokens; the audience is the project id.
func NewFirebaseVerifier(projectID string) (*JWTVerifier, error) {
	return NewJWTVerifier(NewJWKSClient(FirebaseJWKSURL), FirebaseIssuer(projectID), projectID)
}

// CognitoJWKSURL returns the JWKS URL for the given Cognito User Pool.
func CognitoJWKSURL(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json", region, userPoolID)
}

// CognitoIssuer returns the expected issuer for the given Cognito User Pool.
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// NewCognitoVerifier verifies Cognito ID tokens; the audience is the app client id.
func NewCognitoVerifier(region, userPoolID, appClientID string) (*JWTVerifier, error) {
	return NewJWTVerifier(
		NewJWKSClient(CognitoJWKSURL(region, userPoolID)),
		CognitoIssuer(region, userPoolID),
		appClientID,
	)
}
