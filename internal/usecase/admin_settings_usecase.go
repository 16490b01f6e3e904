package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

const settingsImagePrefix = "settings"

// 画像を差し替えられる設定セクション
type SettingsSection string

const (
	SettingsSectionHero  SettingsSection = "hero"
	SettingsSectionAbout SettingsSection = "about"
)

func ParseSettingsSection(s string) (SettingsSection, bool) {
	switch SettingsSection(strings.ToLower(strings.TrimSpace(s))) {
	case SettingsSectionHero:
		return SettingsSectionHero, true
	case SettingsSectionAbout:
		return SettingsSectionAbout, true
	}
	return "", false
}

type AdminSettingsUsecase struct {
	settingsRepo repo.SettingsRepository
	auditRepo    repo.AuditLogRepository
	objects      ObjectStore
	cache        Invalidator
}

func NewAdminSettingsUsecase(
	settingsRepo repo.SettingsRepository,
	auditRepo repo.AuditLogRepository,
	objects ObjectStore,
	cache Invalidator,
) *AdminSettingsUsecase {
	return &AdminSettingsUsecase{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		objects:      objects,
		cache:        cache,
	}
}

// 未保存なら初期値
func (u *AdminSettingsUsecase) Get(ctx context.Context) (model.Settings, error) {
	s, err := u.settingsRepo.Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "get settings", "err", err)
		return model.Settings{}, NewHTTPError(http.StatusInternalServerError, i18n.MsgFetchFailed)
	}
	return s, nil
}

// Save は送られた項目だけを現在の設定に重ねて保存する
func (u *AdminSettingsUsecase) Save(ctx context.Context, actorID string, patch json.RawMessage) (model.Settings, error) {
	return runThenReload(ctx, func(ctx context.Context) error {
		before, err := u.Get(ctx)
		if err != nil {
			return err
		}

		after := before
		if err := json.Unmarshal(patch, &after); err != nil {
			return NewHTTPError(http.StatusBadRequest, i18n.MsgInvalidBody)
		}
		after.ID = model.SettingsID
		if fields := validateSettings(after); !fields.OK() {
			return NewValidationError(fields)
		}
		return u.save(ctx, actorID, before, after)
	}, u.cache, u.Get)
}

// UploadImage は settings/<section>/<ファイル名> に保存し、そのセクションの画像に設定する
func (u *AdminSettingsUsecase) UploadImage(ctx context.Context, actorID string, section SettingsSection, up ImageUpload) (string, error) {
	url, err := uploadImage(ctx, u.objects, u.objects.FieldKey(settingsImagePrefix+"/"+string(section), up.Filename), up)
	if err != nil {
		return "", err
	}

	_, err = runThenReload(ctx, func(ctx context.Context) error {
		before, err := u.Get(ctx)
		if err != nil {
			return err
		}
		after := before
		after.ID = model.SettingsID
		switch section {
		case SettingsSectionHero:
			after.Hero.Image = url
		case SettingsSectionAbout:
			after.About.Image = url
		}
		return u.save(ctx, actorID, before, after)
	}, u.cache, u.Get)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (u *AdminSettingsUsecase) save(ctx context.Context, actorID string, before, after model.Settings) error {
	saved, err := u.settingsRepo.Save(ctx, after)
	if err != nil {
		slog.ErrorContext(ctx, "save settings", "err", err)
		return NewHTTPError(http.StatusInternalServerError, i18n.MsgSaveFailed)
	}
	writeAudit(ctx, u.auditRepo, actorID, model.AuditActionUpdate, model.AuditResourceSettings, model.SettingsID, before, saved)
	return nil
}

func validateSettings(s model.Settings) validator.FieldErrors {
	errs := validator.FieldErrors{}
	if email := strings.TrimSpace(s.ContactEmail); email != "" && !validator.IsEmailLike(email) {
		errs["contactEmail"] = i18n.MsgInvalidEmail
	}
	if phone := strings.TrimSpace(s.ContactPhone); phone != "" && !validator.IsPhoneLike(phone) {
		errs["contactPhone"] = i18n.MsgInvalidPhone
	}
	if strings.TrimSpace(s.Currency) == "" {
		errs["currency"] = i18n.MsgFieldRequired
	}
	if s.Shipping.ShippingCost.IsNegative() {
		errs["shipping.shippingCost"] = i18n.MsgInvalidPrice
	}
	if s.Shipping.FreeShippingThreshold.IsNegative() {
		errs["shipping.freeShippingThreshold"] = i18n.MsgInvalidPrice
	}
	if s.TaxRate.IsNegative() {
		errs["taxRate"] = i18n.MsgInvalidPrice
	}
	return errs
}
