package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ascendhq/concierge-api/internal/entity"
	"github.com/ascendhq/concierge-api/internal/infra/queue"
)

// statusNotification is one row of the static application-status lookup: each
// status change maps to a fixed template, priority and title.
type statusNotification struct {
	Template string
	Priority string
	Title    string
	Message  string
}

var interviewStatusNotifications = map[string]statusNotification{
	entity.InterviewScheduled: {
		Template: "application_interview",
		Priority: entity.PriorityHigh,
		Title:    "Interview scheduled!",
		Message:  "An interview has been scheduled for one of your applications.",
	},
	entity.InterviewOffer: {
		Template: "application_offer",
		Priority: entity.PriorityHigh,
		Title:    "You got an offer!",
		Message:  "Congratulations, one of your applications reached the offer stage.",
	},
	entity.InterviewRejected: {
		Template: "application_update",
		Priority: entity.PriorityMedium,
		Title:    "Application update",
		Message:  "One of your applications has been closed by the company.",
	},
	entity.InterviewWithdrawn: {
		Template: "application_update",
		Priority: entity.PriorityMedium,
		Title:    "Application withdrawn",
		Message:  "An application has been marked as withdrawn.",
	},
}

type InterviewUseCase struct {
	Interviews entity.InterviewRepositoryInterface
	Users      entity.UserRepositoryInterface
	Dispatcher queue.DispatcherInterface
}

func NewInterviewUseCase(
	interviews entity.InterviewRepositoryInterface,
	users entity.UserRepositoryInterface,
	dispatcher queue.DispatcherInterface,
) *InterviewUseCase {
	return &InterviewUseCase{Interviews: interviews, Users: users, Dispatcher: dispatcher}
}

type CreateInterviewInput struct {
	UserID        string     `json:"user_id"`
	Company       string     `json:"company"`
	Position      string     `json:"position"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	MeetingLink   string     `json:"meeting_link,omitempty"`
	AdminNotes    string     `json:"admin_notes,omitempty"`
}

func (uc *InterviewUseCase) Create(ctx context.Context, input CreateInterviewInput) (*entity.Interview, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.UserID) == "" {
		errs = append(errs, ValidationError{"user_id", "is required"})
	}
	if strings.TrimSpace(input.Company) == "" {
		errs = append(errs, ValidationError{"company", "is required"})
	}
	if strings.TrimSpace(input.Position) == "" {
		errs = append(errs, ValidationError{"position", "is required"})
	}
	if len(errs) > 0 {
		return nil, joinValidationErrors(errs)
	}

	if _, err := uc.Users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "user not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load user: " + err.Error()}
	}

	iv := entity.NewInterview(input.UserID, input.Company, input.Position)
	iv.ScheduledDate = input.ScheduledDate
	iv.MeetingLink = input.MeetingLink
	iv.AdminNotes = input.AdminNotes

	if err := uc.Interviews.Create(ctx, iv); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to create interview: " + err.Error()}
	}
	return iv, nil
}

type UpdateInterviewInput struct {
	ID            string
	Company       string     `json:"company,omitempty"`
	Position      string     `json:"position,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	MeetingLink   string     `json:"meeting_link,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	AdminNotes    string     `json:"admin_notes,omitempty"`
}

func (uc *InterviewUseCase) Update(ctx context.Context, input UpdateInterviewInput) (*entity.Interview, error) {
	iv, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Company != "" {
		iv.Company = input.Company
	}
	if input.Position != "" {
		iv.Position = input.Position
	}
	if input.ScheduledDate != nil {
		iv.ScheduledDate = input.ScheduledDate
	}
	if input.MeetingLink != "" {
		iv.MeetingLink = input.MeetingLink
	}
	if input.Feedback != "" {
		iv.Feedback = input.Feedback
	}
	if input.AdminNotes != "" {
		iv.AdminNotes = input.AdminNotes
	}
	iv.UpdatedAt = time.Now()

	if err := uc.Interviews.Update(ctx, iv); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update interview: " + err.Error()}
	}
	return iv, nil
}

type UpdateInterviewStatusInput struct {
	ID     string
	Status string `json:"status"`
}

type InterviewStatusOutput struct {
	Interview *entity.Interview `json:"interview"`
	EmailSent bool              `json:"email_sent"`
}

func (uc *InterviewUseCase) UpdateStatus(ctx context.Context, input UpdateInterviewStatusInput) (*InterviewStatusOutput, error) {
	if !entity.IsValidInterviewStatus(input.Status) {
		return nil, &DomainError{Code: CodeValidation, Message: "invalid status: " + input.Status}
	}

	iv, err := uc.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	iv.Status = input.Status
	iv.UpdatedAt = time.Now()
	if err := uc.Interviews.Update(ctx, iv); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update interview status: " + err.Error()}
	}

	sent := false
	if spec, ok := interviewStatusNotifications[input.Status]; ok {
		owner, err := uc.Users.FindByID(ctx, iv.UserID)
		if err != nil {
			logWarn("interview owner lookup failed", err)
		} else {
			sent = dispatch(ctx, uc.Dispatcher, queue.NotificationJob{
				Email: &queue.EmailSpec{
					To:       owner.Email,
					Template: spec.Template,
					Vars: map[string]any{
						"client_name": owner.FullName,
						"company":     iv.Company,
						"position":    iv.Position,
						"status":      iv.Status,
					},
				},
				Notification: &queue.NotificationSpec{
					UserID:   owner.ID,
					UserType: entity.RoleClient,
					Type:     "application_status_" + iv.Status,
					Title:    spec.Title,
					Message:  spec.Message,
					Category: "application",
					Priority: spec.Priority,
					Metadata: map[string]any{"interview_id": iv.ID, "company": iv.Company},
				},
			})
		}
	}

	return &InterviewStatusOutput{Interview: iv, EmailSent: sent}, nil
}

func (uc *InterviewUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.Interviews.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "failed to delete interview: " + err.Error()}
	}
	return nil
}

func (uc *InterviewUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.Interview, error) {
	list, err := uc.Interviews.ListByUserID(ctx, userID)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to list interviews: " + err.Error()}
	}
	return list, nil
}

func (uc *InterviewUseCase) load(ctx context.Context, id string) (*entity.Interview, error) {
	iv, err := uc.Interviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrInterviewNotFound) {
			return nil, &DomainError{Code: CodeNotFound, Message: "interview not found"}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load interview: " + err.Error()}
	}
	return iv, nil
}
