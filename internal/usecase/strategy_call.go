package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// StrategyCallUseCase runs the slot negotiation for coaching strategy calls:
// a client offers candidate times, an admin confirms one or asks for new ones.
type StrategyCallUseCase struct {
	Calls      entity.StrategyCallRepositoryInterface
	Users      entity.UserRepositoryInterface
	Dispatcher queue.DispatcherInterface
}

func NewStrategyCallUseCase(
	calls entity.StrategyCallRepositoryInterface,
	users entity.UserRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *StrategyCallUseCase {
	return &StrategyCallUseCase{Calls: calls, Users: users, Dispatcher: dispatcher}
}

type RequestStrategyCallInput struct {
	UserID         string        `json:"-"`
	Topic          string        `json:"topic"`
	Notes          string        `json:"notes,omitempty"`
	PreferredSlots []entity.Slot `json:"preferred_slots"`
}

func (uc *StrategyCallUseCase) Request(ctx context.Context, input RequestStrategyCallInput) (*entity.StrategyCall, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.Topic) == "" {
		errs = append(errs, ValidationError{"topic", "is required"})
	}
	errs = append(errs, validateSlots(input.PreferredSlots)...)
	if len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	call, err := entity.NewStrategyCall(input.UserID, input.Topic, input.Notes, input.PreferredSlots)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Calls.Create(ctx, call); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create strategy call: " + err.Error()}
	}

	dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Notification: &queue.NotificationSpec{
			UserID:   input.UserID,
			UserType: entity.RoleClient,
			Type:     "strategy_call_requested",
			Title:    "Strategy call requested",
			Message:  "Your coach will confirm one of your proposed times shortly.",
			Category: "strategy_call",
			Priority: entity.PriorityMedium,
		},
	})

	return call, nil
}

type ConfirmStrategyCallInput struct {
	ID          string
	AdminID     string
	SlotIndex   int    `json:"slot_index"`
	MeetingLink string `json:"meeting_link,omitempty"`
}

type StrategyCallOutput struct {
	Call      *entity.StrategyCall `json:"call"`
	EmailSent bool                 `json:"email_sent"`
}

func (uc *StrategyCallUseCase) Confirm(ctx context.Context, input ConfirmStrategyCallInput) (*StrategyCallOutput, error) {
	call, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if call.Status != entity.CallPendingConfirmation {
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "strategy call is not awaiting confirmation (current status: " + call.Status + ")",
		}
	}

	slot, err := pickSlot(call.PreferredSlots, input.SlotIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	call.Status = entity.CallConfirmed
	confirmed := slot
	call.ConfirmedSlot = &confirmed
	call.ConfirmedTime = combineSlot(slot)
	call.MeetingLink = input.MeetingLink
	call.ConfirmedBy = input.AdminID
	call.ConfirmedAt = &now
	call.UpdatedAt = now

	if err := uc.Calls.Update(ctx, call); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to confirm strategy call: " + err.Error()}
	}

	sent := uc.notifyOwner(ctx, call, "strategy_call_confirmed", "Strategy call confirmed",
		"Your strategy call is confirmed for "+call.ConfirmedTime+".", entity.PriorityHigh,
		map[string]any{
			"confirmed_date": slot.Date,
			"confirmed_time": slot.Time,
			"meeting_link":   input.MeetingLink,
			"topic":          call.Topic,
		})

	return &StrategyCallOutput{Call: call, EmailSent: sent}, nil
}

type RequestNewTimesInput struct {
	ID      string
	AdminID string
	Reason  string `json:"reason"`
}

func (uc *StrategyCallUseCase) RequestNewTimes(ctx context.Context, input RequestNewTimesInput) (*StrategyCallOutput, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "reason is required to request new times"}
	}

	call, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if call.Status != entity.CallPendingConfirmation {
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "strategy call is not awaiting confirmation (current status: " + call.Status + ")",
		}
	}

	now := time.Now()
	call.Status = entity.CallAwaitingNewTimes
	call.NewTimesReason = input.Reason
	call.PreferredSlots = nil
	call.UpdatedAt = now

	if err := uc.Calls.Update(ctx, call); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update strategy call: " + err.Error()}
	}

	sent := uc.notifyOwner(ctx, call, "strategy_call_new_times", "New times needed",
		"Please propose new times for your strategy call.", entity.PriorityMedium,
		map[string]any{"reason": input.Reason, "topic": call.Topic})

	return &StrategyCallOutput{Call: call, EmailSent: sent}, nil
}

func (uc *StrategyCallUseCase) Complete(ctx context.Context, id string) (*entity.StrategyCall, error) {
	return uc.close(ctx, id, entity.CallConfirmed, entity.CallCompleted)
}

func (uc *StrategyCallUseCase) Cancel(ctx context.Context, id string) (*entity.StrategyCall, error) {
	call, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if call.Status == entity.CallCompleted || call.Status == entity.CallCancelled {
		return nil, &DomainError{Code: CodeBusinessRule, Message: "strategy call is already closed"}
	}
	call.Status = entity.CallCancelled
	call.UpdatedAt = time.Now()
	if err := uc.Calls.Update(ctx, call); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to cancel strategy call: " + err.Error()}
	}
	return call, nil
}

func (uc *StrategyCallUseCase) close(ctx context.Context, id, from, to string) (*entity.StrategyCall, error) {
	call, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if call.Status != from {
		return nil, &DomainError{
			Code:    CodeBusinessRule,
			Message: "strategy call must be " + from + " first (current status: " + call.Status + ")",
		}
	}
	call.Status = to
	call.UpdatedAt = time.Now()
	if err := uc.Calls.Update(ctx, call); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update strategy call: " + err.Error()}
	}
	return call, nil
}

func (uc *StrategyCallUseCase) load(ctx context.Context, id string) (*entity.StrategyCall, error) {
	call, err := uc.Calls.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrStrategyCallNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "strategy call not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load strategy call: " + err.Error()}
	}
	return call, nil
}

func (uc *StrategyCallUseCase) notifyOwner(ctx context.Context, call *entity.StrategyCall, template, title, message, priority string, vars map[string]any) bool {
	owner, err := uc.Users.FindByID(ctx, call.UserID)
	if err != nil {
		logWarn("strategy call owner lookup failed", err)
		return false
	}
	vars["client_name"] = owner.FullName

	return dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
		Email: &queue.EmailSpec{
			To:       owner.Email,
			Template: template,
			Vars:     vars,
		},
		Notification: &queue.NotificationSpec{
			UserID:   owner.ID,
			UserType: entity.RoleClient,
			Type:     template,
			Title:    title,
			Message:  message,
			Category: "strategy_call",
			Priority: priority,
		},
	})
}
