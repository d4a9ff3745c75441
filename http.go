package authflow

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// GuardMiddleware adapts the token guard to a fiber handler. The terminal
// states map to three non-overlapping behaviors: Authorized attaches the
// identity and continues, Denied answers with the rejection message, and a
// fault propagates to the app error handler.
func GuardMiddleware(guard *TokenGuard, contextKey string) fiber.Handler {
	if contextKey == "" {
		contextKey = "user"
	}
	return func(c *fiber.Ctx) error {
		decision := guard.Authorize(c.UserContext())

		switch decision.State {
		case GuardAuthorized:
			c.Locals(contextKey, decision.Identity)
			c.SetUserContext(WithIdentity(c.UserContext(), decision.Identity))
			return c.Next()
		case GuardDenied:
			return c.Status(fiber.StatusUnauthorized).SendString(decision.Reason)
		default:
			return decision.Cause
		}
	}
}

// IdentityFromFiber extracts the guard-attached identity from the request.
func IdentityFromFiber(c *fiber.Ctx, key string) (Identity, bool) {
	if key == "" {
		key = "user"
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	identity, ok := raw.(Identity)
	return identity, ok
}

type AuthControllerRoutes struct {
	Signup  string
	Login   string
	Logout  string
	Success string
	Failed  string
	Secure  string
}

// AuthController exposes the pipeline over HTTP: signup and login run their
// strategies and issue a token on success, logout clears the token store.
type AuthController struct {
	Signup  Strategy
	Login   Strategy
	Tokens  TokenStore
	Service TokenService
	Logger  Logger
	Routes  *AuthControllerRoutes
}

func NewAuthController(signup, login Strategy, tokens TokenStore, service TokenService) *AuthController {
	return &AuthController{
		Signup:  signup,
		Login:   login,
		Tokens:  tokens,
		Service: service,
		Logger:  defLogger{},
		Routes: &AuthControllerRoutes{
			Signup:  "/signup",
			Login:   "/login",
			Logout:  "/logout",
			Success: "/success",
			Failed:  "/failed",
			Secure:  "/user",
		},
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterRoutes mounts the public endpoints and the guarded subrouter.
func (a *AuthController) RegisterRoutes(app *fiber.App, guard *TokenGuard, contextKey string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("index")
	})
	app.Get(a.Routes.Login, func(c *fiber.Ctx) error {
		return c.SendString("POST email and password to " + a.Routes.Login)
	})
	app.Get(a.Routes.Signup, func(c *fiber.Ctx) error {
		return c.SendString("POST email and password to " + a.Routes.Signup)
	})

	app.Post(a.Routes.Signup, a.SignupPost)
	app.Post(a.Routes.Login, a.LoginPost)
	app.Get(a.Routes.Logout, a.Logout)
	app.Get(a.Routes.Success, a.Success)
	app.Get(a.Routes.Failed, a.Failed)

	secure := app.Group(a.Routes.Secure, GuardMiddleware(guard, contextKey))
	secure.Get("/profile", a.profileHandler(contextKey, "Hello friend"))
	secure.Get("/settings", a.profileHandler(contextKey, "Settings page"))

	app.Get("/secureroute", GuardMiddleware(guard, contextKey), a.secureRouteHandler(contextKey))
}

// SignupPost registers a new user and logs them in by issuing a token.
func (a *AuthController) SignupPost(c *fiber.Ctx) error {
	return a.runCredentialStrategy(c, a.Signup, "signed up")
}

// LoginPost verifies credentials and issues a token.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	return a.runCredentialStrategy(c, a.Login, "logged in")
}

func (a *AuthController) runCredentialStrategy(c *fiber.Ctx, strategy Strategy, successMsg string) error {
	creds := Credentials{}
	if err := c.BodyParser(&creds); err != nil {
		a.Logger.Error("%s failed to parse payload: %v", strategy.Name(), err)
		return c.Redirect(a.Routes.Failed+"?message="+url.QueryEscape("could not parse credentials"), fiber.StatusSeeOther)
	}

	outcome := strategy.Authenticate(c.UserContext(), &Request{Credentials: creds})

	switch outcome.Kind() {
	case OutcomeRejected:
		a.Logger.Info("%s rejected: %s", strategy.Name(), outcome.Reason())
		return c.Redirect(a.Routes.Failed+"?message="+url.QueryEscape(outcome.Reason()), fiber.StatusSeeOther)

	case OutcomeError:
		a.Logger.Error("%s fault: %v", strategy.Name(), outcome.Cause())
		return outcome.Cause()
	}

	token, err := a.Service.Generate(outcome.Identity())
	if err != nil {
		a.Logger.Error("%s failed to sign token: %v", strategy.Name(), err)
		return err
	}

	if err := a.Tokens.Write(c.UserContext(), token); err != nil {
		a.Logger.Error("%s failed to store token: %v", strategy.Name(), err)
		return err
	}

	return c.Redirect(a.Routes.Success+"?message="+url.QueryEscape(successMsg), fiber.StatusSeeOther)
}

// Logout clears the current token. Clearing an already-empty store is fine.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	if err := a.Tokens.Clear(c.UserContext()); err != nil {
		a.Logger.Error("logout failed to clear token: %v", err)
		return err
	}
	return c.Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AuthController) Success(c *fiber.Ctx) error {
	return c.SendString("You're in! " + c.Query("message"))
}

func (a *AuthController) Failed(c *fiber.Ctx) error {
	return c.SendString("FAILED: " + c.Query("message"))
}

func (a *AuthController) profileHandler(contextKey, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c, contextKey)
		if !ok {
			// The guard guarantees this never happens on a reached route.
			return goerrors.New("guarded route reached without identity", goerrors.CategoryInternal)
		}

		return c.JSON(fiber.Map{
			"user": TokenUser{
				ID:    identity.ID(),
				Email: identity.Email(),
			},
			"message": message,
		})
	}
}

// secureRouteHandler greets the authenticated user by email.
func (a *AuthController) secureRouteHandler(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c, contextKey)
		if !ok {
			return goerrors.New("guarded route reached without identity", goerrors.CategoryInternal)
		}
		return c.SendString("welcome to the top secret place " + identity.Email())
	}
}

// NewErrorHandler builds the app-level fiber error handler: faults are logged
// with cause detail server-side and answered with an opaque message.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).SendString(fiberErr.Message)
		}

		var richErr *goerrors.Error
		if !goerrors.As(err, &richErr) {
			richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
				WithCode(goerrors.CodeInternal)
		}

		logger.Error(
			"request fault category=%s message=%s details=%s",
			richErr.Category,
			richErr.Message,
			print.MaybePrettyJSON(richErr.Metadata),
		)

		code := richErr.Code
		if code == 0 {
			code = fiber.StatusInternalServerError
		}
		return c.Status(code).SendString("something went wrong")
	}
}
