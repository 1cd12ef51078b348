package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/repository"
	"github.com/landgov/backend/usecase"
)

// Engine owns the application lifecycle: submission validation, payment
// gating, review-status transitions and their side effects. All state of
// record lives in the application and payment stores; notifications are
// best-effort and never unwind a committed mutation.
type Engine struct {
	applications repository.ApplicationRepository
	plots        repository.PlotRepository
	users        repository.UserRepository
	payments     repository.PaymentRepository
	notifier     usecase.Notifier
	logger       *zap.Logger
	now          func() time.Time

	// mu serializes mutating operations so read-check-write sequences
	// (double-payment guard, history appends) stay atomic across
	// concurrent requests.
	mu sync.Mutex
}

func New(
	applications repository.ApplicationRepository,
	plots repository.PlotRepository,
	users repository.UserRepository,
	payments repository.PaymentRepository,
	notifier usecase.Notifier,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		applications: applications,
		plots:        plots,
		users:        users,
		payments:     payments,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// SubmitRequest carries a citizen's filing. Documents are opaque references;
// blob storage belongs to the gateway.
type SubmitRequest struct {
	Type      domain.ApplicationType
	PlotID    string
	Documents []string
	Reason    string
}

// Submit validates and files a new application for the calling citizen.
// Preconditions are checked in order and the first failure wins; on any
// failure nothing is persisted.
func (e *Engine) Submit(ctx context.Context, caller domain.Identity, req SubmitRequest) (*domain.Application, error) {
	if caller.Role != domain.RoleCitizen {
		return nil, domain.ErrRoleNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if req.Type == "" || req.PlotID == "" || len(req.Documents) == 0 {
		return nil, domain.ErrMissingFields
	}
	if !req.Type.IsValid() {
		return nil, domain.ErrUnsupportedType
	}

	// A missing plot and a plot owned by someone else collapse into the
	// same rejection so callers cannot probe the registry.
	plot, err := e.plots.GetByID(ctx, req.PlotID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrNotPlotOwner
		}
		return nil, err
	}
	if !plot.IsOwnedBy(caller.Email) {
		return nil, domain.ErrNotPlotOwner
	}

	now := e.now()
	app := &domain.Application{
		ID:             uuid.NewString(),
		Type:           req.Type,
		ApplicantEmail: caller.Email,
		PlotID:         req.PlotID,
		Status:         domain.StatusSubmitted,
		PaymentStatus:  domain.PaymentPending,
		Documents:      append([]string(nil), req.Documents...),
		Reason:         req.Reason,
		History:        []domain.StatusRecord{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	e.notifyApplicant(ctx, caller.UserID, app.ApplicantEmail,
		fmt.Sprintf("Application %s submitted for plot %s. Complete the payment to start processing.", app.ID, app.PlotID))

	return app, nil
}

// CompletePayment settles the filing fee for the caller's own application.
// Payment creation and the payment-status flip are one atomic step; the
// demo gateway has no observable intermediate pending payment.
func (e *Engine) CompletePayment(ctx context.Context, caller domain.Identity, applicationID string, amount float64) (*domain.Payment, error) {
	if caller.Role != domain.RoleCitizen {
		return nil, domain.ErrRoleNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if applicationID == "" || amount <= 0 {
		return nil, domain.ErrInvalidPayload
	}

	app, err := e.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	// Someone else's application is indistinguishable from a missing one.
	if !app.BelongsTo(caller.Email) {
		return nil, domain.ErrApplicationNotFound
	}
	if app.IsPaid() {
		return nil, domain.ErrAlreadyPaid
	}

	payment := &domain.Payment{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		Amount:        amount,
		Status:        domain.PaymentStatusCompleted,
		PaidBy:        caller.Email,
		Timestamp:     e.now(),
	}
	if err := e.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	app.PaymentStatus = domain.PaymentCompleted
	app.UpdatedAt = e.now()
	if err := e.applications.Update(ctx, app); err != nil {
		return nil, err
	}

	e.notifyApplicant(ctx, caller.UserID, app.ApplicantEmail,
		fmt.Sprintf("Payment of %.2f received for application %s.", amount, app.ID))

	return payment, nil
}

// UpdateStatus overwrites an application's review status and appends one
// history record. Statuses are open-ended strings; any officer may update
// any application and no transition graph is enforced.
func (e *Engine) UpdateStatus(ctx context.Context, caller domain.Identity, applicationID, status, remarks string) (*domain.Application, error) {
	if !caller.Role.CanReview() {
		return nil, domain.ErrRoleNotAllowed
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if status == "" {
		return nil, domain.ErrMissingFields
	}

	app, err := e.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	app.Status = status
	app.History = append(app.History, domain.StatusRecord{
		ActorRole: caller.Role,
		Timestamp: e.now(),
		Status:    status,
		Remarks:   remarks,
	})
	if app.OfficerAssigned == "" {
		app.OfficerAssigned = caller.UserID
	}
	app.UpdatedAt = e.now()

	if err := e.applications.Update(ctx, app); err != nil {
		return nil, err
	}

	e.notifyApplicant(ctx, "", app.ApplicantEmail,
		fmt.Sprintf("Application %s status updated to %q.", app.ID, status))

	return app, nil
}

// ListApplications returns the caller's own applications for citizens and
// the full unfiltered set for officers and admins.
func (e *Engine) ListApplications(ctx context.Context, caller domain.Identity) ([]domain.Application, error) {
	filter := repository.ApplicationFilter{}
	if caller.Role == domain.RoleCitizen {
		filter.ApplicantEmail = caller.Email
	}
	return e.applications.List(ctx, filter)
}

// GetApplication applies the same visibility rule as ListApplications; an
// application invisible to the caller reads as not found.
func (e *Engine) GetApplication(ctx context.Context, caller domain.Identity, id string) (*domain.Application, error) {
	app, err := e.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleCitizen && !app.BelongsTo(caller.Email) {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

// notifyApplicant resolves the applicant's user ID when the caller is not
// the applicant and emits a best-effort notification. Failures are logged
// and swallowed: the application/payment store is the state of record.
func (e *Engine) notifyApplicant(ctx context.Context, knownUserID, applicantEmail, message string) {
	if e.notifier == nil {
		return
	}

	userID := knownUserID
	if userID == "" {
		user, err := e.users.GetByEmail(ctx, applicantEmail)
		if err != nil {
			e.logger.Warn("skipping notification, applicant lookup failed",
				zap.String("applicant_email", applicantEmail), zap.Error(err))
			return
		}
		userID = user.ID
	}

	if err := e.notifier.Notify(ctx, userID, message); err != nil {
		e.logger.Warn("notification delivery failed",
			zap.String("to_user_id", userID), zap.Error(err))
	}
}
