// Package row implements the fixed-width on-disk record format.
package row

import "encoding/binary"

const (
	// UsernameCapacity is the maximum number of characters a username may
	// hold, not counting the trailing null.
	UsernameCapacity = 32
	// EmailCapacity is the maximum number of characters an email may hold,
	// not counting the trailing null.
	EmailCapacity = 255

	idSize       = 4
	usernameSize = UsernameCapacity + 1
	emailSize    = EmailCapacity + 1

	idOffset       = 0
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + usernameSize

	// Size is the serialized width of a Row on disk: ROW_SIZE.
	Size = idSize + usernameSize + emailSize
)

// Row is a single record: a uint32 primary key plus two fixed-capacity
// text fields.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// New builds a Row, returning an error if either field exceeds its
// capacity.
func New(id uint32, username, email string) (Row, error) {
	if len(username) > UsernameCapacity {
		return Row{}, ErrStringTooLong
	}
	if len(email) > EmailCapacity {
		return Row{}, ErrStringTooLong
	}
	return Row{ID: id, Username: username, Email: email}, nil
}

// ErrStringTooLong is returned by New when a field exceeds its capacity.
var ErrStringTooLong = stringTooLongError{}

type stringTooLongError struct{}

func (stringTooLongError) Error() string { return "string is too long" }

// Serialize writes r into dst, which must be at least Size bytes long.
// The id is written little-endian; username and email are
// copied verbatim followed by a null terminator and zero padding out to
// their capacity.
func Serialize(r Row, dst []byte) {
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], r.ID)
	putFixedString(dst[usernameOffset:usernameOffset+usernameSize], r.Username)
	putFixedString(dst[emailOffset:emailOffset+emailSize], r.Email)
}

// Deserialize reads a Row out of src, which must be at least Size bytes
// long. Strings are read up to their first null byte; trailing bytes past
// the terminator are ignored.
func Deserialize(src []byte) Row {
	return Row{
		ID:       binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize]),
		Username: readFixedString(src[usernameOffset : usernameOffset+usernameSize]),
		Email:    readFixedString(src[emailOffset : emailOffset+emailSize]),
	}
}

func putFixedString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	copy(dst, s)
}

func readFixedString(src []byte) string {
	n := 0
	for n < len(src) && src[n] != 0 {
		n++
	}
	return string(src[:n])
}
