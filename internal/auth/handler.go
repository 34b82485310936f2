package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// TokenTTL is the default lifetime of an issued operator token.
const TokenTTL = 12 * time.Hour

// Handler issues operator JWTs in exchange for the shared dashboard
// password.
type Handler struct {
	secret   string
	password string
	ttl      time.Duration
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates a login handler. Empty secret or password
// disables login entirely.
func NewHandler(secret, password string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{secret: secret, password: password, ttl: TokenTTL, logger: logger.Named("auth"), now: time.Now}
}

// WithTokenTTL overrides the token lifetime. Zero or negative keeps the
// default.
func (h *Handler) WithTokenTTL(ttl time.Duration) *Handler {
	if ttl > 0 {
		h.ttl = ttl
	}
	return h
}

// LoginRequest carries the operator password.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" || h.password == "" {
		http.Error(w, "login disabled", http.StatusServiceUnavailable)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Hash both sides so the comparison is constant-time regardless of
	// password length.
	want := sha256.Sum256([]byte(h.password))
	got := sha256.Sum256([]byte(req.Password))
	if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
		h.logger.Warn("failed login attempt", "remote_ip", r.RemoteAddr)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	expiresAt := h.now().Add(h.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   "operator",
		IssuedAt:  jwt.NewNumericDate(h.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.secret))
	if err != nil {
		h.logger.Error("failed to sign token", "error", err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LoginResponse{Token: signed, ExpiresAt: expiresAt}); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
