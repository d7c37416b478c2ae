package validate

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

const MemberIDLength = 10

func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// IsMemberID reports whether s is a numeric member id with a valid check digit.
func IsMemberID(s string) bool {
	return len(s) == MemberIDLength && IsLuna(s)
}

// NewMemberID returns a random member id whose last digit is the Luhn check digit.
func NewMemberID() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(1 + rand.IntN(9)))
	for b.Len() < MemberIDLength-1 {
		b.WriteString(strconv.Itoa(rand.IntN(10)))
	}
	body := b.String()
	for d := 0; d < 10; d++ {
		if id := body + strconv.Itoa(d); IsLuna(id) {
			return id
		}
	}
	return body + "0"
}
