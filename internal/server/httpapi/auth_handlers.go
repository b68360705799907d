package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/portfolio/internal/common"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
	"github.com/dmitrijs2005/portfolio/internal/server/models"
	"github.com/dmitrijs2005/portfolio/internal/server/services"
)

type authResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

func toAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{User: res.User.Public(), Token: res.Token}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := a.users.Register(r.Context(), req.Name, req.Email, req.Password)
	a.metrics.AuthEvent("register", err == nil)
	if err != nil {
		a.failErr(w, r, err, "User")
		return
	}
	ok(w, http.StatusCreated, toAuthResponse(res))
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := a.users.Login(r.Context(), req.Email, req.Password)
	a.metrics.AuthEvent("login", err == nil)
	if err != nil {
		a.failErr(w, r, err, "User")
		return
	}
	ok(w, http.StatusOK, toAuthResponse(res))
}

func (a *API) requestOTP(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := a.users.RequestOTP(r.Context(), req.Email, req.Password, clientIP(r))
	a.metrics.AuthEvent("request_otp", err == nil)
	if err != nil {
		a.failErr(w, r, err, "User")
		return
	}
	okMessage(w, "OTP sent to your email")
}

func (a *API) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := a.users.VerifyOTP(r.Context(), req.Email, req.OTP)
	a.metrics.AuthEvent("verify_otp", err == nil)
	if err != nil {
		a.failErr(w, r, err, "User")
		return
	}
	ok(w, http.StatusOK, toAuthResponse(res))
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	id, found := auth.IdentityFromContext(r.Context())
	if !found {
		fail(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}

	user, err := a.users.Me(r.Context(), id.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fail(w, http.StatusNotFound, "User not found")
			return
		}
		a.failErr(w, r, err, "User")
		return
	}
	ok(w, http.StatusOK, user.Public())
}
