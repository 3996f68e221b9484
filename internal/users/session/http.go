// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shopfront/internal/navigation/landing"
	requestutil "github.com/taibuivan/shopfront/internal/platform/request"
	"github.com/taibuivan/shopfront/internal/platform/respond"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/platform/validate"
)

// Form limits for the auth API.
const (
	minPasswordLength   = 8
	maxPasswordLength   = 128
	maxNameLength       = 100
	maxIdentifierLength = 254
	otpCodeLength       = 6
)

// # Definitions & Constructors

// Handler implements the auth API the browser forms talk to.
//
// Every endpoint works on the session named by the 'sid' cookie, which the
// session middleware guarantees to be present.
type Handler struct {
	provider *Provider
}

// NewHandler constructs a new [Handler] with its provider dependency.
func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
//
// # Endpoints
//   - GET  /session         : Current session view.
//   - POST /login           : Signs in with identifier and password.
//   - POST /register        : Creates an account.
//   - POST /otp/confirm     : Confirms the mobile number.
//   - POST /logout          : Signs out.
//   - POST /profile/refresh : Refetches profile details.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/session", handler.current)
	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/otp/confirm", handler.confirmOTP)
	router.Post("/logout", handler.logout)
	router.Post("/profile/refresh", handler.refreshProfile)

	return router
}

// # Request Payloads

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type registerRequest struct {
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type confirmOTPRequest struct {
	Code string `json:"code"`
}

// sessionResponse is the session view plus where the viewer lands by default.
type sessionResponse struct {
	Snapshot
	HomePath string `json:"home_path"`
}

func newSessionResponse(snapshot Snapshot) sessionResponse {
	return sessionResponse{Snapshot: snapshot, HomePath: landing.HomePath(snapshot.Roles())}
}

/*
Current returns the session view.

GET /api/v1/auth/session

Response:
  - 200: sessionResponse
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.provider.Snapshot(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if snapshot.User != nil {
		requestutil.RecordUser(request, snapshot.User.ID)
	}

	respond.OK(writer, newSessionResponse(snapshot))
}

/*
Login signs the session in.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Identifier, Password)

Response:
  - 200: LoginResult: OTP requirement, roles and redirect target
  - 400: Validation failure
  - 401: Credentials rejected
  - 503: Backend unreachable
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldIdentifier, input.Identifier).
		MaxLen(FieldIdentifier, input.Identifier, maxIdentifierLength).
		Required(FieldPassword, input.Password).
		MaxLen(FieldPassword, input.Password, maxPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.provider.Login(request.Context(), sessionID, input.Identifier, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Register creates an account.

POST /api/v1/auth/register

Description: Only the CUSTOMER and SELLER roles can be requested, and the
terms must be accepted.

Request:
  - Body: registerRequest (Name, Mobile, Password, Role, TermsAccepted)

Response:
  - 201: RegisterResult
  - 400: Validation failure
  - 409: Account already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldName, input.Name, maxNameLength).
		Required(FieldMobile, input.Mobile).
		Mobile(FieldMobile, input.Mobile).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, minPasswordLength).
		MaxLen(FieldPassword, input.Password, maxPasswordLength).
		OneOf(FieldRole, input.Role, sec.RoleCustomer.String(), sec.RoleSeller.String()).
		Accepted(FieldTermsAccepted, input.TermsAccepted)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := sec.ParseRole(input.Role)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldRole, "Unknown role"))
		return
	}

	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.provider.Register(request.Context(), sessionID, RegisterInput{
		Name:          input.Name,
		Mobile:        input.Mobile,
		Password:      input.Password,
		Role:          role,
		TermsAccepted: input.TermsAccepted,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
ConfirmOTP verifies the mobile number of the signed-in account.

POST /api/v1/auth/otp/confirm

Request:
  - Body: confirmOTPRequest (Code)

Response:
  - 200: sessionResponse after confirmation
  - 400: Invalid code
  - 401: Not signed in
*/
func (handler *Handler) confirmOTP(writer http.ResponseWriter, request *http.Request) {
	var input confirmOTPRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code).Digits(FieldCode, input.Code, otpCodeLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.provider.ConfirmOTP(request.Context(), sessionID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.provider.Snapshot(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(snapshot))
}

/*
Logout signs the session out. Calling it on a signed-out session is a no-op.

POST /api/v1/auth/logout

Response:
  - 204: No Content
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.provider.Logout(request.Context(), sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
RefreshProfile schedules a profile refetch.

POST /api/v1/auth/profile/refresh

Response:
  - 202: sessionResponse while the refetch runs
  - 401: Not signed in
*/
func (handler *Handler) refreshProfile(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := requestutil.RequiredSessionID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.provider.RefreshProfile(request.Context(), sessionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Status(writer, http.StatusAccepted, newSessionResponse(snapshot))
}
