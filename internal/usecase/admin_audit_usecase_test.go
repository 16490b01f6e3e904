package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/i18n"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminAuditUsecase_List_BuildsFilter(t *testing.T) {
	audits := new(AuditRepoMock)
	want := []model.AuditLog{{ID: 1, Action: model.AuditActionUpdateOrderStatus}}

	audits.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == model.AuditActionUpdateOrderStatus &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceOrder &&
			f.ResourceID != nil && *f.ResourceID == "o1" &&
			f.ActorUserID == nil &&
			f.Limit == 10
	})).Return(want, nil)

	uc := usecase.NewAdminAuditUsecase(audits)
	got, err := uc.List(context.Background(), usecase.AuditListInput{
		Action:       "update_order_status",
		ResourceType: "ORDER",
		ResourceID:   " o1 ",
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	audits.AssertExpectations(t)
}

func TestAdminAuditUsecase_List_RejectsBadRange(t *testing.T) {
	uc := usecase.NewAdminAuditUsecase(new(AuditRepoMock))

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err := uc.List(context.Background(), usecase.AuditListInput{From: &from, To: &to})
	assertHTTPError(t, err, http.StatusBadRequest, i18n.MsgInvalidBody)

	_, err = uc.List(context.Background(), usecase.AuditListInput{Offset: -1})
	assertHTTPError(t, err, http.StatusBadRequest, i18n.MsgInvalidBody)
}

func TestAdminAuditUsecase_List_RepoError(t *testing.T) {
	audits := new(AuditRepoMock)
	audits.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	logs, err := usecase.NewAdminAuditUsecase(audits).List(context.Background(), usecase.AuditListInput{})
	assertHTTPError(t, err, http.StatusInternalServerError, i18n.MsgFetchFailed)
	assert.Empty(t, logs)
}
