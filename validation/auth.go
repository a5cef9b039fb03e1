package validation

import "github.com/abefas/taskapi/models"

// CredentialsSchema describes the register and login bodies.
var CredentialsSchema = Schema{
	{Name: "username", Required: true, Kind: KindString},
	{Name: "password", Required: true, Kind: KindString},
}

// ValidateCredentials checks a register or login payload.
func ValidateCredentials(payload map[string]any) (models.LoginRequest, error) {
	if err := CredentialsSchema.Validate(payload); err != nil {
		return models.LoginRequest{}, err
	}
	return models.LoginRequest{
		Username: payload["username"].(string),
		Password: payload["password"].(string),
	}, nil
}
