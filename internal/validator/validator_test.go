package validator

import (
	"testing"

	"storefront/internal/i18n"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validShipping() Shipping {
	return Shipping{
		FirstName: "Lisa",
		LastName:  "M",
		Email:     "lisa@example.com",
		Phone:     "+971 50-123 4567",
		Address:   "Street 1",
		City:      "Dubai",
		Country:   "UAE",
	}
}

func TestValidateShipping_OK(t *testing.T) {
	assert.True(t, ValidateShipping(validShipping()).OK())
}

func TestValidateShipping_NotesOptionalOthersRequired(t *testing.T) {
	errs := ValidateShipping(Shipping{FirstName: "  "})
	assert.Equal(t, i18n.MsgFieldRequired, errs["firstName"])
	for _, f := range []string{"lastName", "email", "phone", "address", "city", "country"} {
		assert.Contains(t, errs, f)
	}
	assert.NotContains(t, errs, "notes")
}

func TestValidateShipping_Formats(t *testing.T) {
	s := validShipping()
	s.Email = "lisa@example"
	s.Phone = "050-abc"
	errs := ValidateShipping(s)
	assert.Equal(t, i18n.MsgInvalidEmail, errs["email"])
	assert.Equal(t, i18n.MsgInvalidPhone, errs["phone"])
}

func TestFieldErrors_Localize(t *testing.T) {
	errs := FieldErrors{"email": i18n.MsgInvalidEmail}
	assert.Equal(t, "يرجى إدخال بريد إلكتروني صحيح.", errs.Localize(i18n.AR)["email"])
}

func TestValidateRegister(t *testing.T) {
	assert.True(t, ValidateRegister("a@b.co", "12345678").OK())
	errs := ValidateRegister("nope", "short")
	assert.Equal(t, i18n.MsgInvalidEmail, errs["email"])
	assert.Equal(t, i18n.MsgWeakPassword, errs["password"])
}

func TestValidateLogin(t *testing.T) {
	assert.True(t, ValidateLogin("a@b.co", "x").OK())
	assert.Contains(t, ValidateLogin("", ""), "password")
}

func TestValidateProduct(t *testing.T) {
	ok := ValidateProduct(i18n.NewText("Rose", ""), "c1", []SizeInput{
		{Size: "50ml", Price: decimal.NewFromInt(10), Stock: 1},
	})
	assert.True(t, ok.OK())

	errs := ValidateProduct(i18n.NewText("", ""), "", []SizeInput{
		{Size: "50ml", Price: decimal.NewFromInt(-1), Stock: -1},
		{Size: "50ml", Price: decimal.NewFromInt(1), Stock: 0},
	})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "categoryId")
	assert.Contains(t, errs, "sizes[0].price")
	assert.Contains(t, errs, "sizes[0].stock")
	assert.Contains(t, errs, "sizes[1].size")
}

func TestValidateCategory(t *testing.T) {
	assert.False(t, ValidateCategory(i18n.Text{}).OK())
	assert.True(t, ValidateCategory(i18n.NewText("", "عود")).OK())
}
