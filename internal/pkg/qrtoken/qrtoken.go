// Package qrtoken issues and verifies the signed tokens embedded in QR
// codes. Three token kinds exist (user, player, organizer), each signed with
// its own salted key so a token of one kind never verifies as another.
package qrtoken

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindUser      Kind = "user-qr"
	KindPlayer    Kind = "player-qr"
	KindOrganizer Kind = "organizer-qr"
)

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
)

type Engine struct {
	secret string
}

func NewEngine(secret string) *Engine {
	return &Engine{secret: secret}
}

// key derives the per-kind signing key. Kinds act as salts: verification
// under the wrong kind fails as a bad signature.
func (e *Engine) key(kind Kind) []byte {
	return []byte(e.secret + ":" + string(kind))
}

type UserPayload struct {
	UserID   int64     `json:"user_id"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"-"`
}

type PlayerPayload struct {
	PlayerID  int64      `json:"player_id"`
	BookingID int64      `json:"booking_id"`
	IssuedAt  time.Time  `json:"-"`
	ExpiresAt *time.Time `json:"-"` // optional; enforced on verify
}

type OrganizerPayload struct {
	BookingID int64     `json:"booking_id"`
	UserID    int64     `json:"user_id"`
	SlotDate  string    `json:"slot_date"` // "2006-01-02"
	Sport     string    `json:"sport"`
	IssuedAt  time.Time `json:"-"`
}

type userClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

type playerClaims struct {
	PlayerID  int64 `json:"player_id"`
	BookingID int64 `json:"booking_id"`
	jwtlib.RegisteredClaims
}

type organizerClaims struct {
	BookingID int64  `json:"booking_id"`
	UserID    int64  `json:"user_id"`
	SlotDate  string `json:"slot_date"`
	Sport     string `json:"sport"`
	jwtlib.RegisteredClaims
}

func (e *Engine) sign(kind Kind, claims jwtlib.Claims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(e.key(kind))
}

// timeOf unwraps an optional numeric date claim. A signed token is not
// required to carry iat, so the pointer may be nil.
func timeOf(d *jwtlib.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

func (e *Engine) parse(kind Kind, tokenStr string, claims jwtlib.Claims) error {
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return e.key(kind), nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalidSignature
	}
	if !token.Valid {
		return ErrInvalidSignature
	}
	return nil
}

func (e *Engine) IssueUser(p UserPayload) (string, error) {
	return e.sign(KindUser, userClaims{
		UserID: p.UserID,
		Email:  p.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt: jwtlib.NewNumericDate(p.IssuedAt),
		},
	})
}

func (e *Engine) VerifyUser(tokenStr string) (*UserPayload, error) {
	var claims userClaims
	if err := e.parse(KindUser, tokenStr, &claims); err != nil {
		return nil, err
	}
	return &UserPayload{
		UserID:   claims.UserID,
		Email:    claims.Email,
		IssuedAt: timeOf(claims.IssuedAt),
	}, nil
}

func (e *Engine) IssuePlayer(p PlayerPayload) (string, error) {
	rc := jwtlib.RegisteredClaims{
		IssuedAt: jwtlib.NewNumericDate(p.IssuedAt),
	}
	if p.ExpiresAt != nil {
		rc.ExpiresAt = jwtlib.NewNumericDate(*p.ExpiresAt)
	}
	return e.sign(KindPlayer, playerClaims{
		PlayerID:         p.PlayerID,
		BookingID:        p.BookingID,
		RegisteredClaims: rc,
	})
}

func (e *Engine) VerifyPlayer(tokenStr string) (*PlayerPayload, error) {
	var claims playerClaims
	if err := e.parse(KindPlayer, tokenStr, &claims); err != nil {
		return nil, err
	}
	out := &PlayerPayload{
		PlayerID:  claims.PlayerID,
		BookingID: claims.BookingID,
		IssuedAt:  timeOf(claims.IssuedAt),
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		out.ExpiresAt = &t
	}
	return out, nil
}

func (e *Engine) IssueOrganizer(p OrganizerPayload) (string, error) {
	return e.sign(KindOrganizer, organizerClaims{
		BookingID: p.BookingID,
		UserID:    p.UserID,
		SlotDate:  p.SlotDate,
		Sport:     p.Sport,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt: jwtlib.NewNumericDate(p.IssuedAt),
		},
	})
}

func (e *Engine) VerifyOrganizer(tokenStr string) (*OrganizerPayload, error) {
	var claims organizerClaims
	if err := e.parse(KindOrganizer, tokenStr, &claims); err != nil {
		return nil, err
	}
	return &OrganizerPayload{
		BookingID: claims.BookingID,
		UserID:    claims.UserID,
		SlotDate:  claims.SlotDate,
		Sport:     claims.Sport,
		IssuedAt:  timeOf(claims.IssuedAt),
	}, nil
}
