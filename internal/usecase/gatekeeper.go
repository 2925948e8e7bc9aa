package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// GatekeeperUseCase holds the concierge admin actions on a pending
// consultation request: confirm a slot, ask for new times, or waitlist.
type GatekeeperUseCase struct {
	Consultations entity.ConsultationRepositoryInterface
	Dispatcher    queue.DispatcherInterface
	PortalURL     string
}

func NewGatekeeperUseCase(
	consultations entity.ConsultationRepositoryInterface,
	dispatcher queue.DispatcherInterface,
	portalURL string,
) *GatekeeperUseCase {
	return &GatekeeperUseCase{
		Consultations: consultations,
		Dispatcher:    dispatcher,
		PortalURL:     portalURL,
	}
}

type GatekeeperOutput struct {
	Request   *entity.ConsultationRequest `json:"request"`
	EmailSent bool                        `json:"email_sent"`
}

type ConfirmConsultationInput struct {
	ID          string
	AdminID     string
	SlotIndex   int    `json:"slot_index"`
	MeetingLink string `json:"meeting_link,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (uc *GatekeeperUseCase) Confirm(ctx context.Context, input ConfirmConsultationInput) (*GatekeeperOutput, error) {
	request, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	slot, err := pickSlot(request.PreferredSlots, input.SlotIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = entity.ConsultationConfirmed
	request.AdminStatus = entity.ConsultationConfirmed
	confirmed := slot
	request.ConfirmedSlot = &confirmed
	request.ConfirmedTime = combineSlot(slot)
	request.MeetingLink = input.MeetingLink
	request.ConfirmedBy = input.AdminID
	request.ConfirmedAt = &now
	if input.Notes != "" {
		request.AdminNotes = input.Notes
	}
	request.UpdatedAt = now

	if err := uc.Consultations.Update(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to confirm consultation: " + err.Error()}
	}

	meetingLink := input.MeetingLink
	if meetingLink == "" {
		meetingLink = "Your coach will share the meeting link shortly."
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "consultation_confirmed",
			Vars: map[string]any{
				"client_name":    request.FullName,
				"confirmed_date": slot.Date,
				"confirmed_time": slot.Time,
				"meeting_link":   input.MeetingLink,
				"meeting_info":   meetingLink,
			},
		},
		Notification: &queue.NotificationSpec{
			UserID:   request.ID,
			UserType: entity.RoleClient,
			Type:     "consultation_confirmed",
			Title:    "Consultation confirmed",
			Message:  "Your consultation is confirmed for " + request.ConfirmedTime + ".",
			Category: "consultation",
			Priority: entity.PriorityHigh,
		},
	})

	return &GatekeeperOutput{Request: request, EmailSent: sent}, nil
}

type RescheduleConsultationInput struct {
	ID      string
	AdminID string
	Reason  string `json:"reason"`
	Notes   string `json:"notes,omitempty"`
}

func (uc *GatekeeperUseCase) Reschedule(ctx context.Context, input RescheduleConsultationInput) (*GatekeeperOutput, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "reason is required to request a reschedule"}
	}

	request, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = entity.ConsultationRescheduled
	// Client must resubmit slots, so the gatekeeper view goes back to pending.
	request.AdminStatus = entity.ConsultationPending
	request.RescheduleReason = input.Reason
	request.ConfirmedSlot = nil
	request.ConfirmedTime = ""
	if input.Notes != "" {
		request.AdminNotes = input.Notes
	}
	request.UpdatedAt = now

	if err := uc.Consultations.Update(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to reschedule consultation: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "consultation_reschedule_request",
			Vars: map[string]any{
				"client_name":     request.FullName,
				"reason":          input.Reason,
				"reschedule_link": uc.PortalURL + "/consultations/" + request.ID + "/slots",
			},
		},
		Notification: &queue.NotificationSpec{
			UserID:   request.ID,
			UserType: entity.RoleClient,
			Type:     "consultation_reschedule_request",
			Title:    "New times requested",
			Message:  "Please submit new preferred times for your consultation.",
			Category: "consultation",
			Priority: entity.PriorityMedium,
		},
	})

	return &GatekeeperOutput{Request: request, EmailSent: sent}, nil
}

type WaitlistConsultationInput struct {
	ID      string
	AdminID string
	Reason  string `json:"reason"`
	Notes   string `json:"notes,omitempty"`
}

func (uc *GatekeeperUseCase) Waitlist(ctx context.Context, input WaitlistConsultationInput) (*GatekeeperOutput, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "reason is required to waitlist a request"}
	}

	request, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = entity.ConsultationWaitlisted
	request.AdminStatus = entity.ConsultationWaitlisted
	request.WaitlistReason = input.Reason
	if input.Notes != "" {
		request.AdminNotes = input.Notes
	}
	request.UpdatedAt = now

	if err := uc.Consultations.Update(ctx, request); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to waitlist consultation: " + err.Error()}
	}

	sent := dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       request.Email,
			Template: "consultation_waitlisted",
			Vars: map[string]any{
				"client_name": request.FullName,
				"reason":      input.Reason,
			},
		},
		Notification: &queue.NotificationSpec{
			UserID:   request.ID,
			UserType: entity.RoleClient,
			Type:     "consultation_waitlisted",
			Title:    "You are on the waitlist",
			Message:  "Your consultation request has been waitlisted.",
			Category: "consultation",
			Priority: entity.PriorityMedium,
		},
	})

	return &GatekeeperOutput{Request: request, EmailSent: sent}, nil
}

func (uc *GatekeeperUseCase) load(ctx context.Context, id string) (*entity.ConsultationRequest, error) {
	request, err := uc.Consultations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrConsultationNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "consultation request not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load consultation: " + err.Error()}
	}

	switch request.Status {
	case entity.ConsultationRejected, entity.ConsultationRegistered:
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "request is in terminal status " + request.Status + " and cannot be changed",
		}
	}
	return request, nil
}
