package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseSettingsSection(t *testing.T) {
	s, ok := usecase.ParseSettingsSection(" Hero ")
	assert.True(t, ok)
	assert.Equal(t, usecase.SettingsSectionHero, s)

	_, ok = usecase.ParseSettingsSection("footer")
	assert.False(t, ok)
}

func TestAdminSettingsUsecase_Save_MergesOntoCurrent(t *testing.T) {
	ctx := context.Background()
	settings := new(SettingsRepoMock)
	audit := new(AuditRepoMock)
	cache := &InvalidatorMock{}

	current := model.DefaultSettings()
	current.StoreName = i18n.NewText("Lisa Perfume", "ليزا للعطور")
	current.ContactEmail = "hello@example.com"

	saved := current
	saved.StoreName.EN = "Lisa Perfumes"
	saved.Shipping.ShippingCost = dec("25")

	settings.On("Get", mock.Anything).Return(current, nil).Once()
	settings.On("Save", mock.Anything, mock.MatchedBy(func(s model.Settings) bool {
		return s.ID == model.SettingsID &&
			s.StoreName.EN == "Lisa Perfumes" &&
			s.StoreName.AR == "ليزا للعطور" &&
			s.ContactEmail == "hello@example.com" &&
			s.Shipping.ShippingCost.Equal(dec("25"))
	})).Return(saved, nil)
	settings.On("Get", mock.Anything).Return(saved, nil).Once()
	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ResourceType == model.AuditResourceSettings && l.ResourceID == model.SettingsID
	})).Return(nil)

	uc := usecase.NewAdminSettingsUsecase(settings, audit, new(ObjectStoreMock), cache)

	out, err := uc.Save(ctx, "admin-1", json.RawMessage(`{"storeName":{"en":"Lisa Perfumes"},"shipping":{"shippingCost":"25"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Lisa Perfumes", out.StoreName.EN)
	assert.Equal(t, 1, cache.Calls())
	settings.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminSettingsUsecase_Save_CreatesFromDefaults(t *testing.T) {
	settings := new(SettingsRepoMock)
	audit := new(AuditRepoMock)

	settings.On("Get", mock.Anything).Return(model.Settings{}, repo.ErrNotFound)
	settings.On("Save", mock.Anything, mock.MatchedBy(func(s model.Settings) bool {
		return s.Currency == "AED" && s.MaintenanceMode
	})).Return(model.Settings{}, nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminSettingsUsecase(settings, audit, new(ObjectStoreMock), &InvalidatorMock{})

	_, err := uc.Save(context.Background(), "admin-1", json.RawMessage(`{"maintenanceMode":true}`))
	require.NoError(t, err)
	settings.AssertExpectations(t)
}

func TestAdminSettingsUsecase_Save_Invalid(t *testing.T) {
	settings := new(SettingsRepoMock)
	settings.On("Get", mock.Anything).Return(model.DefaultSettings(), nil)
	cache := &InvalidatorMock{}

	uc := usecase.NewAdminSettingsUsecase(settings, new(AuditRepoMock), new(ObjectStoreMock), cache)

	_, err := uc.Save(context.Background(), "admin-1", json.RawMessage(`{"contactEmail":"nope","shipping":{"shippingCost":"-5"}}`))
	he := assertHTTPError(t, err, http.StatusBadRequest, i18n.MsgValidation)
	require.NotNil(t, he)
	assert.Equal(t, i18n.MsgInvalidEmail, he.Fields["contactEmail"])
	assert.Equal(t, i18n.MsgInvalidPrice, he.Fields["shipping.shippingCost"])

	_, err = uc.Save(context.Background(), "admin-1", json.RawMessage(`[1,2]`))
	assertHTTPError(t, err, http.StatusBadRequest, i18n.MsgInvalidBody)

	assert.Equal(t, 0, cache.Calls())
	settings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdminSettingsUsecase_UploadImage_RecordsURL(t *testing.T) {
	ctx := context.Background()
	settings := new(SettingsRepoMock)
	audit := new(AuditRepoMock)
	objects := new(ObjectStoreMock)

	objects.On("Put", mock.Anything, "settings/about/shop.jpg").Return("/uploads/settings/about/shop.jpg", nil)
	settings.On("Get", mock.Anything).Return(model.DefaultSettings(), nil)
	settings.On("Save", mock.Anything, mock.MatchedBy(func(s model.Settings) bool {
		return s.About.Image == "/uploads/settings/about/shop.jpg" && s.Hero.Image == ""
	})).Return(model.Settings{}, nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminSettingsUsecase(settings, audit, objects, &InvalidatorMock{})

	url, err := uc.UploadImage(ctx, "admin-1", usecase.SettingsSectionAbout, usecase.ImageUpload{Filename: "shop.jpg", Body: body("x")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/settings/about/shop.jpg", url)
	settings.AssertExpectations(t)
	objects.AssertExpectations(t)
}
