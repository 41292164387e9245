package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/config"
	"github.com/sangkips/shulefees-api/internal/domain/entity"
	"github.com/sangkips/shulefees-api/internal/domain/enum"
	"github.com/sangkips/shulefees-api/internal/domain/repository"
	infraRepo "github.com/sangkips/shulefees-api/internal/infrastructure/repository"
	"github.com/sangkips/shulefees-api/internal/infrastructure/render"
	"github.com/sangkips/shulefees-api/internal/infrastructure/session"
	"github.com/sangkips/shulefees-api/pkg/apperror"
	"github.com/sangkips/shulefees-api/pkg/numwords"
	"github.com/sangkips/shulefees-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BalanceOnErrorZero shows a failed balance lookup as zero instead of N/A
const BalanceOnErrorZero = "zero"

// ReceiptService hosts receipt sessions and renders them
type ReceiptService struct {
	paymentRepo repository.PaymentRepository
	studentRepo repository.StudentRepository
	schoolRepo  repository.SchoolProfileRepository
	tenantRepo  repository.TenantRepository
	balances    *BalanceService
	printer     *PrinterService
	sessions    *session.Store[ReceiptSession]
	cfg         config.ReceiptConfig
	log         *zap.Logger
	now         func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	paymentRepo repository.PaymentRepository,
	studentRepo repository.StudentRepository,
	schoolRepo repository.SchoolProfileRepository,
	tenantRepo repository.TenantRepository,
	balances *BalanceService,
	printer *PrinterService,
	sessions *session.Store[ReceiptSession],
	cfg config.ReceiptConfig,
	log *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		schoolRepo:  schoolRepo,
		tenantRepo:  tenantRepo,
		balances:    balances,
		printer:     printer,
		sessions:    sessions,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

// ReceiptCandidate is a student that can be placed on a family receipt
type ReceiptCandidate struct {
	ReceiptStudent
	IsPayer  bool `json:"is_payer"`
	Selected bool `json:"selected"`
}

// ReceiptSessionView is the session state returned to clients together
// with the receipt built from it
type ReceiptSessionView struct {
	ID            uuid.UUID            `json:"id"`
	ReceiptNumber string               `json:"receipt_number"`
	PaymentID     uuid.UUID            `json:"payment_id"`
	Mode          enum.ReceiptMode     `json:"mode"`
	Size          entity.ReceiptSize   `json:"size"`
	Page          entity.PageSpec      `json:"page"`
	Fields        entity.ReceiptFields `json:"fields"`
	Candidates    []ReceiptCandidate   `json:"candidates"`
	Receipt       entity.ReceiptData   `json:"receipt"`
}

// OpenReceiptSessionInput represents input for opening a receipt session
type OpenReceiptSessionInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
	Mode      *enum.ReceiptMode
	Size      *entity.ReceiptSize
}

// OpenSession loads a payment, its payer and the payer's siblings, looks up
// every balance and starts a session. The receipt number is fixed here.
func (s *ReceiptService) OpenSession(ctx context.Context, input *OpenReceiptSessionInput) (*ReceiptSessionView, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.ErrTenantRequired
	}

	payment, err := s.paymentRepo.GetByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	payer := payment.Student
	if payer == nil {
		payer, err = s.studentRepo.GetByID(ctx, payment.StudentID)
		if err != nil {
			return nil, err
		}
		if payer == nil {
			return nil, apperror.NewNotFoundError("Student")
		}
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	settings := entity.TenantSettings{}
	if tenant != nil {
		settings = tenant.Settings
	}

	students := append([]entity.Student{*payer}, s.siblings(ctx, payer)...)

	sess := ReceiptSession{
		ID:            uuid.New(),
		TenantID:      tenantID,
		UserID:        input.UserID,
		ReceiptNumber: utils.GenerateReceiptNumber(),
		Payment: ReceiptPayment{
			ID:        payment.ID,
			StudentID: payer.ID,
			Amount:    payment.Amount,
			Method:    payment.Method,
		},
		School:   s.schoolInfo(ctx),
		Currency: tenant.Currency(s.cfg.Currency),
		Mode:     enum.ReceiptModeIndividual,
		Size:     s.defaultSize(settings),
		Fields: entity.ReceiptFields{
			PaymentDate:    payment.PaymentDate.Format(dateLayout(settings.DateFormat)),
			AmountInWords:  numwords.Amount(payment.Amount),
			Notes:          payment.Notes,
			SignatureLabel: firstNonEmpty(settings.SignatureLabel, s.cfg.SignatureLabel),
		},
		Candidates: s.lookupBalances(ctx, students),
		Selection:  []uuid.UUID{payer.ID},
		CreatedAt:  s.now(),
	}
	if input.Mode != nil {
		if err := sess.SetMode(*input.Mode); err != nil {
			return nil, err
		}
	}
	if input.Size != nil {
		if err := sess.SetSize(*input.Size); err != nil {
			return nil, err
		}
	}

	s.sessions.Put(sess.ID, sess)
	s.log.Info("receipt session opened",
		zap.String("session_id", sess.ID.String()),
		zap.String("receipt_number", sess.ReceiptNumber),
		zap.String("payment_id", payment.ID.String()),
		zap.Int("siblings", len(students)-1))

	return s.view(sess), nil
}

// GetSession returns the current state of a session
func (s *ReceiptService) GetSession(ctx context.Context, id uuid.UUID) (*ReceiptSessionView, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// UpdateReceiptSessionInput represents the editable parts of a session
type UpdateReceiptSessionInput struct {
	Mode           *enum.ReceiptMode
	Size           *entity.ReceiptSize
	PaymentDate    *string
	AmountInWords  *string
	Notes          *string
	SignatureLabel *string
}

// UpdateSession applies edits. Either every edit applies or none does.
func (s *ReceiptService) UpdateSession(ctx context.Context, id uuid.UUID, input *UpdateReceiptSessionInput) (*ReceiptSessionView, error) {
	sess, err := s.update(ctx, id, func(sess *ReceiptSession) error {
		if input.Mode != nil {
			if err := sess.SetMode(*input.Mode); err != nil {
				return err
			}
		}
		if input.Size != nil {
			if err := sess.SetSize(*input.Size); err != nil {
				return err
			}
		}
		if input.PaymentDate != nil {
			sess.Fields.PaymentDate = strings.TrimSpace(*input.PaymentDate)
		}
		if input.AmountInWords != nil {
			// Clearing the words falls back to the derived amount in words
			sess.Fields.AmountInWords = strings.TrimSpace(*input.AmountInWords)
		}
		if input.Notes != nil {
			sess.Fields.Notes = strings.TrimSpace(*input.Notes)
		}
		if input.SignatureLabel != nil {
			sess.Fields.SignatureLabel = strings.TrimSpace(*input.SignatureLabel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// ToggleStudent adds or removes a sibling from the family selection
func (s *ReceiptService) ToggleStudent(ctx context.Context, id, studentID uuid.UUID) (*ReceiptSessionView, error) {
	sess, err := s.update(ctx, id, func(sess *ReceiptSession) error {
		return sess.ToggleStudent(studentID)
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// CloseSession discards a session
func (s *ReceiptService) CloseSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	s.sessions.Delete(id)
	return nil
}

// Preview returns the on-screen layout of the receipt
func (s *ReceiptService) Preview(ctx context.Context, id uuid.UUID) (*render.Preview, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	box := render.PreviewBox{WidthPx: s.cfg.PreviewWidthPx, HeightPx: s.cfg.PreviewHeightPx}
	preview := render.RenderPreview(sess.Build(), sess.Size, box)
	return &preview, nil
}

// PrintHTML returns a standalone document that prints itself when opened
func (s *ReceiptService) PrintHTML(ctx context.Context, id uuid.UUID) ([]byte, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return render.RenderPrintHTML(sess.Build(), sess.Size)
}

// PDF returns the receipt as a PDF and its download file name
func (s *ReceiptService) PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data := sess.Build()
	doc, err := render.RenderPDF(data, sess.Size, render.PDFOptions{})
	if err != nil {
		return nil, "", err
	}
	return doc, render.PDFFileName(data.ReceiptNumber), nil
}

// ThermalResult reports a thermal print attempt
type ThermalResult struct {
	Receipt entity.ReceiptData `json:"receipt"`
	Printed bool               `json:"printed"`
	Warning string             `json:"warning,omitempty"`
}

// PrintThermal sends the receipt to the thermal printer. A printer failure
// is reported as a warning alongside the receipt rather than an error.
func (s *ReceiptService) PrintThermal(ctx context.Context, id uuid.UUID) (*ThermalResult, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	data := sess.Build()
	result := &ThermalResult{Receipt: data, Printed: true}
	if err := s.printer.PrintReceipt(ctx, data); err != nil {
		result.Printed = false
		result.Warning = "Receipt could not be printed: " + err.Error()
	}
	return result, nil
}

// ReceiptSizes lists the supported paper sizes
func (s *ReceiptService) ReceiptSizes() []entity.PageSpec {
	return entity.ReceiptSizes()
}

func (s *ReceiptService) load(ctx context.Context, id uuid.UUID) (ReceiptSession, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return ReceiptSession{}, apperror.ErrTenantRequired
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		return ReceiptSession{}, sessionError(err)
	}
	if sess.TenantID != tenantID {
		return ReceiptSession{}, apperror.NewNotFoundError("Receipt session")
	}
	return sess, nil
}

func (s *ReceiptService) update(ctx context.Context, id uuid.UUID, fn func(*ReceiptSession) error) (ReceiptSession, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return ReceiptSession{}, apperror.ErrTenantRequired
	}
	sess, err := s.sessions.Update(id, func(sess *ReceiptSession) error {
		if sess.TenantID != tenantID {
			return session.ErrNotFound
		}
		return fn(sess)
	})
	if err != nil {
		return ReceiptSession{}, sessionError(err)
	}
	return sess, nil
}

func sessionError(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return apperror.NewNotFoundError("Receipt session")
	}
	return err
}

// siblings returns the other students sharing the payer's guardian phone.
// A failed lookup degrades to an individual-only session.
func (s *ReceiptService) siblings(ctx context.Context, payer *entity.Student) []entity.Student {
	if payer.GuardianKey == "" {
		return nil
	}
	found, err := s.studentRepo.ListByGuardianKey(ctx, payer.GuardianKey)
	if err != nil {
		s.log.Warn("sibling lookup failed",
			zap.String("student_id", payer.ID.String()),
			zap.Error(err))
		return nil
	}
	siblings := make([]entity.Student, 0, len(found))
	for _, st := range found {
		if st.ID != payer.ID {
			siblings = append(siblings, st)
		}
	}
	return siblings
}

// lookupBalances computes every student's balance concurrently and waits
// for all of them. A failed lookup gets the configured sentinel.
func (s *ReceiptService) lookupBalances(ctx context.Context, students []entity.Student) []ReceiptStudent {
	out := make([]ReceiptStudent, len(students))

	var g errgroup.Group
	if s.cfg.LookupConcurrency > 0 {
		g.SetLimit(s.cfg.LookupConcurrency)
	}
	for i := range students {
		st := &students[i]
		out[i] = ReceiptStudent{
			ID:              st.ID,
			Name:            st.FullName(),
			ClassName:       st.ClassName(),
			AdmissionNumber: st.AdmissionNumber,
		}
		g.Go(func() error {
			bal, err := s.balances.BalanceFor(ctx, st)
			if err != nil {
				s.log.Warn("balance lookup failed",
					zap.String("student_id", st.ID.String()),
					zap.String("fallback", s.cfg.BalanceOnError),
					zap.Error(err))
				out[i].Balance = decimal.Zero
				out[i].BalanceKnown = s.cfg.BalanceOnError == BalanceOnErrorZero
				return nil
			}
			out[i].Balance = bal.Balance
			out[i].BalanceKnown = true
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// schoolInfo reads the letterhead. Failure leaves the header blank.
func (s *ReceiptService) schoolInfo(ctx context.Context) entity.SchoolInfo {
	profile, err := s.schoolRepo.Get(ctx)
	if err != nil {
		s.log.Warn("school profile lookup failed", zap.Error(err))
		return entity.SchoolInfo{}
	}
	if profile == nil {
		return entity.SchoolInfo{}
	}
	return entity.SchoolInfo{Name: profile.Name, Address: profile.Address, Phone: profile.Phone}
}

func (s *ReceiptService) defaultSize(settings entity.TenantSettings) entity.ReceiptSize {
	if size, ok := entity.ParseReceiptSize(settings.ReceiptSize); ok {
		return size
	}
	if size, ok := entity.ParseReceiptSize(s.cfg.DefaultSize); ok {
		return size
	}
	return entity.ReceiptSizeA5
}

func (s *ReceiptService) view(sess ReceiptSession) *ReceiptSessionView {
	candidates := make([]ReceiptCandidate, len(sess.Candidates))
	for i, c := range sess.Candidates {
		isPayer := c.ID == sess.Payment.StudentID
		candidates[i] = ReceiptCandidate{
			ReceiptStudent: c,
			IsPayer:        isPayer,
			Selected:       isPayer || sess.IsSelected(c.ID),
		}
	}
	return &ReceiptSessionView{
		ID:            sess.ID,
		ReceiptNumber: sess.ReceiptNumber,
		PaymentID:     sess.Payment.ID,
		Mode:          sess.Mode,
		Size:          sess.Size,
		Page:          sess.Size.Spec(),
		Fields:        sess.Fields,
		Candidates:    candidates,
		Receipt:       sess.Build(),
	}
}

// dateLayout maps a school's date format setting to a Go layout
func dateLayout(format string) string {
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "YYYY-MM-DD":
		return "2006-01-02"
	case "MM/DD/YYYY":
		return "01/02/2006"
	case "DD MMM YYYY":
		return "02 Jan 2006"
	default:
		return "02/01/2006"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
