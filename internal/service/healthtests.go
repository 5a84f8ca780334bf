package service

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Active health tests: short self-administered mini-games measuring elapsed
// time or movement. Sessions are in-memory and pruned after a grace period.

// TestKind identifies which mini-game a session belongs to.
type TestKind string

const (
	TestBreathHold TestKind = "breath"
	TestReflex     TestKind = "reflex"
	TestTremor     TestKind = "tremor"
)

const (
	// Reflex prompt appears after a uniform random delay in [1.5s, 3.5s).
	reflexDelayMin  = 1500 * time.Millisecond
	reflexDelaySpan = 2000 * time.Millisecond
	// Reaction under 250ms rates as elite.
	reflexEliteMs = 250

	// Tremor test runs for a fixed 5-second window.
	tremorDuration = 5 * time.Second

	// Breath hold over 30 seconds rates as excellent.
	breathExcellentSeconds = 30

	sessionTTL = 10 * time.Minute
)

var (
	ErrUnknownSession  = fmt.Errorf("unknown test session")
	ErrSessionMismatch = fmt.Errorf("session belongs to a different test")
)

type testSession struct {
	kind      TestKind
	createdAt time.Time
	startedAt time.Time
	armAt     time.Time
	movement  float64
	lastX     float64
	lastY     float64
	hasLast   bool
}

// HealthTestService tracks mini-game sessions.
type HealthTestService struct {
	mu       sync.Mutex
	sessions map[string]*testSession
	rng      *rand.Rand
	now      func() time.Time
	logger   *zap.Logger
}

// NewHealthTestService creates a new HealthTestService
func NewHealthTestService(logger *zap.Logger) *HealthTestService {
	return &HealthTestService{
		sessions: make(map[string]*testSession),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		logger:   logger,
	}
}

func (s *HealthTestService) create(kind TestKind) (string, *testSession) {
	id := uuid.New().String()
	sess := &testSession{kind: kind, createdAt: s.now()}
	s.sessions[id] = sess
	return id, sess
}

func (s *HealthTestService) get(id string, kind TestKind) (*testSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	if sess.kind != kind {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrSessionMismatch, kind, sess.kind)
	}
	return sess, nil
}

func (s *HealthTestService) prune() {
	cutoff := s.now().Add(-sessionTTL)
	for id, sess := range s.sessions {
		if sess.createdAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// StartBreathHold begins a breath-hold measurement.
func (s *HealthTestService) StartBreathHold() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	id, sess := s.create(TestBreathHold)
	sess.startedAt = s.now()
	return id
}

// BreathHoldResult is the outcome of a breath-hold test.
type BreathHoldResult struct {
	DurationSeconds float64 `json:"duration_seconds"`
	Verdict         string  `json:"verdict"`
}

// StopBreathHold ends the measurement and grades it.
func (s *HealthTestService) StopBreathHold(id string) (BreathHoldResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id, TestBreathHold)
	if err != nil {
		return BreathHoldResult{}, err
	}
	delete(s.sessions, id)

	elapsed := s.now().Sub(sess.startedAt).Seconds()
	verdict := "Below Average"
	if elapsed > breathExcellentSeconds {
		verdict = "Excellent Capacity"
	}
	return BreathHoldResult{DurationSeconds: elapsed, Verdict: verdict}, nil
}

// ReflexSession describes an armed reflex test.
type ReflexSession struct {
	ID string `json:"id"`
	// PromptAfterMs tells the client when to flip its display; the server
	// keeps the authoritative arm time.
	PromptAfterMs int `json:"prompt_after_ms"`
}

// StartReflex arms a reaction-time test with a randomized delay.
func (s *HealthTestService) StartReflex() ReflexSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	delay := reflexDelayMin + time.Duration(s.rng.Int63n(int64(reflexDelaySpan)))
	id, sess := s.create(TestReflex)
	sess.armAt = s.now().Add(delay)

	return ReflexSession{ID: id, PromptAfterMs: int(delay.Milliseconds())}
}

// ReflexResult is the outcome of a reflex tap.
type ReflexResult struct {
	Early      bool   `json:"early"`
	ReactionMs int    `json:"reaction_ms,omitempty"`
	Verdict    string `json:"verdict,omitempty"`
}

// TapReflex records the tap. Tapping before the prompt window opens counts
// as an early fault and ends the session.
func (s *HealthTestService) TapReflex(id string) (ReflexResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id, TestReflex)
	if err != nil {
		return ReflexResult{}, err
	}
	delete(s.sessions, id)

	now := s.now()
	if now.Before(sess.armAt) {
		return ReflexResult{Early: true}, nil
	}

	reaction := int(now.Sub(sess.armAt).Milliseconds())
	verdict := "Signs of Fatigue"
	if reaction < reflexEliteMs {
		verdict = "Elite Reflexes"
	}
	return ReflexResult{ReactionMs: reaction, Verdict: verdict}, nil
}

// StartTremor begins a 5-second stability window.
func (s *HealthTestService) StartTremor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	id, sess := s.create(TestTremor)
	sess.startedAt = s.now()
	return id
}

// RecordTremorSample accumulates pointer movement while the window is open.
// Samples after the window closes are ignored.
func (s *HealthTestService) RecordTremorSample(id string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id, TestTremor)
	if err != nil {
		return err
	}

	if s.now().Sub(sess.startedAt) > tremorDuration {
		return nil
	}

	if sess.hasLast {
		sess.movement += math.Hypot(x-sess.lastX, y-sess.lastY)
	}
	sess.lastX, sess.lastY = x, y
	sess.hasLast = true
	return nil
}

// TremorResult is the outcome of a stability test. Lower is steadier.
type TremorResult struct {
	Score int `json:"score"`
}

// FinishTremor closes the window and returns the accumulated movement.
func (s *HealthTestService) FinishTremor(id string) (TremorResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id, TestTremor)
	if err != nil {
		return TremorResult{}, err
	}
	delete(s.sessions, id)

	return TremorResult{Score: int(math.Floor(sess.movement))}, nil
}
