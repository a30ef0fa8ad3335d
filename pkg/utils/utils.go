package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

const ticketPrefix = "ZGL"

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewTicketNumber() (string, error)
}

type utils struct{}

func New() IUtils {
	return &utils{}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// NewTicketNumber returns an opaque report identifier of the form ZGL-<digits>.
// There is no backing store; the number is only a reference the user can quote.
func (u *utils) NewTicketNumber() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}

	n := binary.BigEndian.Uint32(buf[:]) % 10000
	return fmt.Sprintf("%s-%04d", ticketPrefix, n), nil
}
