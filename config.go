package authflow

// SimpleConfig is a plain-struct Config for wiring the pipeline without an
// external configuration system.
type SimpleConfig struct {
	SigningKey      string
	TokenExpiration int
	ContextKey      string
	Issuer          string
	Audience        []string
}

var _ Config = (*SimpleConfig)(nil)

func (c *SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c *SimpleConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c *SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c *SimpleConfig) GetIssuer() string { return c.Issuer }

func (c *SimpleConfig) GetAudience() []string { return c.Audience }
