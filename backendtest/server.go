package backendtest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thermowatch/thermowatch/core/apiclient"
	"github.com/thermowatch/thermowatch/core/session"
)

const tokenTTL = 24 * time.Hour

type account struct {
	passwordHash []byte
	identity     session.Identity
}

// Server is an in-memory implementation of the monitoring backend's HTTP
// surface: the login exchange, the protected threshold read/write pair, and
// the public sensor-reading collection. It backs integration tests and the
// local stub server command.
//
// Login issues a signed HS256 token; protected routes verify it. The client
// under test still treats the token as an opaque string.
type Server struct {
	secret []byte

	mu        sync.Mutex
	accounts  map[string]account
	threshold float64
	readings  []apiclient.SensorReading
}

// Option configures a Server.
type Option func(*Server)

// WithUser registers a login account. The password is stored as a bcrypt
// hash, mirroring how the real backend keeps credentials.
func WithUser(username, password string, identity session.Identity) Option {
	return func(s *Server) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		s.accounts[username] = account{passwordHash: hash, identity: identity}
	}
}

// WithThreshold sets the initial alert threshold.
func WithThreshold(value float64) Option {
	return func(s *Server) {
		s.threshold = value
	}
}

// WithReadings replaces the seeded sensor readings. Readings are served in
// the order given; the real backend serves reverse-chronological order.
func WithReadings(readings []apiclient.SensorReading) Option {
	return func(s *Server) {
		s.readings = readings
	}
}

// New creates a stub backend with one default account ("alice"/"secret"),
// a threshold of 30, and a dozen seeded readings.
func New(opts ...Option) *Server {
	s := &Server{
		secret:    []byte(uuid.New().String()),
		accounts:  make(map[string]account),
		threshold: 30,
	}

	WithUser("alice", "secret", session.Identity{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
	})(s)
	s.readings = SeedReadings(12, s.threshold)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SeedReadings generates n readings in reverse-chronological order, five
// minutes apart, with temperatures oscillating around 25 degrees.
func SeedReadings(n int, threshold float64) []apiclient.SensorReading {
	now := time.Now().UTC().Truncate(time.Second)
	readings := make([]apiclient.SensorReading, 0, n)
	for i := 0; i < n; i++ {
		t := threshold
		readings = append(readings, apiclient.SensorReading{
			ID:                 uuid.New().String(),
			Temperature:        25 + float64(i%7) - 3,
			ThresholdAtCapture: &t,
			RecordedAt:         now.Add(-time.Duration(i) * 5 * time.Minute),
		})
	}
	return readings
}

// Threshold returns the current threshold value for assertions.
func (s *Server) Threshold() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold
}

// Handler returns the HTTP handler implementing the backend surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))

	r.Post("/auth/login", s.handleLogin)
	r.Get("/api/sensor-readings", s.handleListReadings)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/api/threshold", s.handleGetThreshold)
		r.Post("/api/threshold", s.handleSetThreshold)
	})

	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	claims := jwt.RegisteredClaims{
		Subject:   req.Username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  acct.identity,
	})
}

func (s *Server) handleListReadings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	readings := make([]apiclient.SensorReading, len(s.readings))
	copy(readings, s.readings)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, readings)
}

func (s *Server) handleGetThreshold(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, apiclient.ThresholdSetting{Value: s.Threshold()})
}

func (s *Server) handleSetThreshold(w http.ResponseWriter, r *http.Request) {
	var req apiclient.ThresholdSetting
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value < -90 || req.Value > 150 {
		respondError(w, http.StatusUnprocessableEntity, "threshold must be between -90 and 150")
		return
	}

	s.mu.Lock()
	s.threshold = req.Value
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, apiclient.ThresholdSetting{Value: req.Value})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
