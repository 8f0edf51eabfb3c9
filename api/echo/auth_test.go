package echoapi

import (
	"net/http"
	"strconv"
	"testing"
)

func Test_authApi_login(t *testing.T) {
	ta := setup(t)

	badCreds := marshallObj(t, httpErr{Error: "Kredencialet e gabuara"})

	tests := []httpTest{
		{
			name: "empty credentials", method: http.MethodPost, path: "/api/login",
			body:     marshallObj(t, LoginRequest{}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, map[string]string{
				"email":    "this field is required",
				"password": "this field is required",
			}),
		},
		{
			name: "unknown email", method: http.MethodPost, path: "/api/login",
			body:     marshallObj(t, LoginRequest{Email: "ghost@school.edu", Password: "admin123"}),
			wantCode: http.StatusUnauthorized, wantData: badCreds,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/api/login",
			body:     marshallObj(t, LoginRequest{Email: "admin@school.edu", Password: "nope"}),
			wantCode: http.StatusUnauthorized, wantData: badCreds,
		},
		{
			name: "ok", method: http.MethodPost, path: "/api/login",
			body:     marshallObj(t, LoginRequest{Email: "admin@school.edu", Password: "admin123"}),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			ta.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_login_response(t *testing.T) {
	ta := setup(t)

	req, rec := newRequest(http.MethodPost, "/api/login",
		marshallObj(t, LoginRequest{Email: "student@school.edu", Password: "student123"}))
	ta.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	decodeBody(t, rec, &resp)

	if resp.Token == "" {
		t.Error("response is missing the token")
	}
	if resp.User["email"] != "student@school.edu" {
		t.Errorf("user email = %v", resp.User["email"])
	}
	// the stored hash must never leak
	for _, key := range []string{"password", "password_hash"} {
		if _, ok := resp.User[key]; ok {
			t.Errorf("response leaks %q", key)
		}
	}

	// the token works against a protected endpoint
	id := int(resp.User["id"].(float64))
	req, rec = newAuthRequest(http.MethodGet, "/api/student/"+strconv.Itoa(id)+"/grades", resp.Token)
	ta.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated request code = %d, body = %s", rec.Code, rec.Body.String())
	}
}
