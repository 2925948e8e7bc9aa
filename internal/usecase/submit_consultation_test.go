package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ascendhq/concierge-api/internal/entity"
)

func validSubmission() SubmitConsultationInput {
	return SubmitConsultationInput{
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Phone:    "+1 555 123 4567",
		Message:  "Looking for help with a senior PM search",
		PreferredSlots: []entity.Slot{
			{Date: "2026-09-10", Time: "10:00"},
			{Date: "2026-09-11", Time: "15:30"},
		},
	}
}

func TestSubmitConsultationCreatesPendingRequest(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	repo.On("Create", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

	uc := NewSubmitConsultationUseCase(repo, dispatcher)
	out, err := uc.Execute(ctx, validSubmission())

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.ConsultationPending, out.Status)
	repo.AssertExpectations(t)
}

func TestSubmitConsultationValidation(t *testing.T) {
	uc := NewSubmitConsultationUseCase(new(MockConsultationRepository), new(MockDispatcher))

	cases := []struct {
		name   string
		mutate func(*SubmitConsultationInput)
		field  string
	}{
		{"missing name", func(i *SubmitConsultationInput) { i.FullName = " " }, "full_name"},
		{"bad email", func(i *SubmitConsultationInput) { i.Email = "not-an-email" }, "email"},
		{"bad phone", func(i *SubmitConsultationInput) { i.Phone = "123" }, "phone"},
		{"no slots", func(i *SubmitConsultationInput) { i.PreferredSlots = nil }, "preferred_slots"},
		{"too many slots", func(i *SubmitConsultationInput) {
			i.PreferredSlots = []entity.Slot{
				{Date: "2026-09-10", Time: "10:00"},
				{Date: "2026-09-11", Time: "10:00"},
				{Date: "2026-09-12", Time: "10:00"},
				{Date: "2026-09-13", Time: "10:00"},
			}
		}, "preferred_slots"},
		{"bad slot date", func(i *SubmitConsultationInput) {
			i.PreferredSlots = []entity.Slot{{Date: "tomorrow", Time: "10:00"}}
		}, "preferred_slots[0].date"},
		{"bad slot time", func(i *SubmitConsultationInput) {
			i.PreferredSlots = []entity.Slot{{Date: "2026-09-10", Time: "25:00"}}
		}, "preferred_slots[0].time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSubmission()
			tc.mutate(&input)

			_, err := uc.Execute(context.Background(), input)

			var dErr *DomainError
			assert.ErrorAs(t, err, &dErr)
			assert.Equal(t, CodeValidation, dErr.Code)
			assert.Contains(t, dErr.Message, tc.field)
		})
	}
}

func TestSubmitConsultationSucceedsWhenDispatchFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockConsultationRepository)
	dispatcher := new(MockDispatcher)

	repo.On("Create", ctx, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.Anything).Return(assert.AnError)

	uc := NewSubmitConsultationUseCase(repo, dispatcher)
	out, err := uc.Execute(ctx, validSubmission())

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
}
