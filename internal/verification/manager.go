// Package verification implements the one-time-code email verification
// flow gating registration: code issuance with a per-email send cap,
// single-use code checks, and a short-lived verified flag.
//
// Unlike token validation, every read here fails CLOSED: if Redis cannot
// confirm a verification, the email counts as not verified. This gate
// protects account creation, not availability, so the restrictive
// default is the safe one.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"drivehub/internal/logging"
	"drivehub/internal/mail"
)

var (
	ErrRateLimited       = errors.New("verification send limit exceeded")
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrCodeExpired       = errors.New("verification code expired or missing")
	ErrCodeMismatch      = errors.New("verification code mismatch")
	ErrCodeFormatInvalid = errors.New("verification code must be 5 digits")
	ErrStoreUnavailable  = errors.New("verification store unavailable")
)

const (
	codeLength  = 5
	codeTTL     = 3 * time.Minute
	verifiedTTL = 30 * time.Minute
	sendWindow  = 10 * time.Minute
	maxSends    = 3

	codePrefix     = "email_verification:"
	verifiedPrefix = "email_verified:"
	sendPrefix     = "email_send_limit:"
)

var codeShape = regexp.MustCompile(`^\d{5}$`)

// RegisteredChecker reports whether an email already belongs to an
// account. Implemented by the user repository.
type RegisteredChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Manager owns the three verification keys for an email: the live code,
// the send counter, and the verified flag. All expiry is Redis TTL.
type Manager struct {
	rdb     redis.UniversalClient
	mailer  mail.Sender
	users   RegisteredChecker
	log     logging.Logger
	newCode func() (string, error)
}

type Option func(*Manager)

// WithCodeGenerator pins the code source. Tests use it to make the
// generated code observable.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.newCode = gen }
}

func NewManager(rdb redis.UniversalClient, mailer mail.Sender, users RegisteredChecker, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		rdb:     rdb,
		mailer:  mailer,
		users:   users,
		log:     log,
		newCode: newNumericCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// newNumericCode draws 5 digits from crypto/rand.
func newNumericCode() (string, error) {
	var b strings.Builder
	b.Grow(codeLength)

	ten := big.NewInt(10)
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// SendCode generates and emails a fresh code for the address. A new code
// overwrites any live one. At most 3 sends per rolling 10-minute window.
func (m *Manager) SendCode(ctx context.Context, email string) error {
	if err := m.checkSendLimit(ctx, email); err != nil {
		return err
	}

	exists, err := m.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRegistered
	}

	code, err := m.newCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := m.rdb.Set(ctx, codePrefix+email, code, codeTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	subject, body := mail.VerificationMessage(code)
	if err := m.mailer.Send(ctx, email, subject, body); err != nil {
		// The stored code stays live; a retried dispatch inside the
		// ttl can still succeed without regenerating.
		return err
	}

	m.incrementSendCount(ctx, email)
	m.log.Info(ctx, "verification code sent", "email", email)
	return nil
}

// checkSendLimit rejects once the counter reaches the cap. A store
// outage disables the limiter rather than blocking sends.
func (m *Manager) checkSendLimit(ctx context.Context, email string) error {
	count, err := m.rdb.Get(ctx, sendPrefix+email).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		m.log.Warn(ctx, "send limit check unavailable, allowing send", "email", email, "error", err)
		return nil
	}
	if count >= maxSends {
		return ErrRateLimited
	}
	return nil
}

func (m *Manager) incrementSendCount(ctx context.Context, email string) {
	key := sendPrefix + email
	count, err := m.rdb.Incr(ctx, key).Result()
	if err != nil {
		m.log.Warn(ctx, "send counter increment failed", "email", email, "error", err)
		return
	}
	if count == 1 {
		if err := m.rdb.Expire(ctx, key, sendWindow).Err(); err != nil {
			m.log.Warn(ctx, "send counter expire failed", "email", email, "error", err)
		}
	}
}

// VerifyCode checks a submitted code against the stored one. On match
// the code is consumed and the verified flag is set for 30 minutes.
// A mismatch leaves the code in place so the user may retry until the
// ttl elapses.
func (m *Manager) VerifyCode(ctx context.Context, email, submitted string) error {
	submitted = strings.TrimSpace(submitted)
	if !codeShape.MatchString(submitted) {
		return ErrCodeFormatInvalid
	}

	stored, err := m.rdb.Get(ctx, codePrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCodeExpired
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if stored != submitted {
		return ErrCodeMismatch
	}

	if err := m.rdb.Del(ctx, codePrefix+email).Err(); err != nil {
		m.log.Warn(ctx, "consumed code delete failed", "email", email, "error", err)
	}

	if err := m.rdb.Set(ctx, verifiedPrefix+email, "true", verifiedTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	m.log.Info(ctx, "email verified", "email", email)
	return nil
}

// IsVerified reports whether the email holds a live verified flag.
// Any store failure reads as not verified.
func (m *Manager) IsVerified(ctx context.Context, email string) bool {
	val, err := m.rdb.Get(ctx, verifiedPrefix+email).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.log.Warn(ctx, "verified flag check failed, failing closed", "email", email, "error", err)
		}
		return false
	}
	return val == "true"
}

// ClearVerification consumes the verified flag once registration has
// used it, so a stale flag cannot back a second registration.
func (m *Manager) ClearVerification(ctx context.Context, email string) error {
	if err := m.rdb.Del(ctx, verifiedPrefix+email).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
