package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/policy"
	"github.com/shkolla/portal/core/user"
)

const jwtContextKey = "userToken"

// Claims represents the authorization claims transmitted via a JWT.
// Role is the server-verified role; client-supplied role fields are
// never consulted.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    jwtContextKey,
		Claims:        new(Claims),
	}
}

func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: usr.Email,
		Role:  usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(jwtContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextActor resolves the verified session claims into a policy Actor.
func getContextActor(ctx echo.Context) (policy.Actor, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return policy.Actor{}, err
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return policy.Actor{}, errUnauthorized
	}
	return policy.Actor{UserID: id, Role: claims.Role}, nil
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
)

func (lr LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

type authApi struct {
	conf     *core.Config
	svc      *user.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, deps ServerDeps) {
	api := authApi{
		conf:     deps.Conf,
		svc:      deps.UserSvc,
		validate: deps.Validate,
	}
	g.POST("/login", api.login)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if core.IsNotFound(errors.Cause(err)) {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := GenerateToken(api.conf, GetUserClaims(api.conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}
