package cart

import (
	"net/mail"
	"regexp"
	"strings"

	"shop-backend/internal/pkg/errs"
)

var (
	ErrInvalidFullName    = errs.New("full name must be 1-100 characters")
	ErrInvalidEmail       = errs.New("invalid email address")
	ErrInvalidPhone       = errs.New("invalid phone number")
	ErrInvalidAddress     = errs.New("invalid address")
	ErrInvalidHouseNumber = errs.New("invalid house number")
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\- ]{6,19}$`)

const (
	maxFullNameLength = 100
	maxAddressLength  = 200
)

type CustomerDetails struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	HouseNumber int    `json:"houseNumber"`
	Apartment   string `json:"apartment,omitempty"`
}

func NewCustomerDetails(fullName, email, phone, address string, houseNumber int, apartment string) (*CustomerDetails, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" || len([]rune(fullName)) > maxFullNameLength {
		return nil, ErrInvalidFullName
	}

	email = strings.TrimSpace(email)
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return nil, ErrInvalidEmail
	}

	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	address = strings.TrimSpace(address)
	if address == "" || len([]rune(address)) > maxAddressLength {
		return nil, ErrInvalidAddress
	}

	if houseNumber < 0 {
		return nil, ErrInvalidHouseNumber
	}

	return &CustomerDetails{
		FullName:    fullName,
		Email:       email,
		Phone:       phone,
		Address:     address,
		HouseNumber: houseNumber,
		Apartment:   strings.TrimSpace(apartment),
	}, nil
}
