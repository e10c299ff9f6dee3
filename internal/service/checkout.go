package service

import (
	"context"
	"strings"

	"shopbot/internal/domain"
	"shopbot/internal/repository"
	"shopbot/internal/session"

	"go.uber.org/zap"
)

// CheckoutService drives the checkout conversation: it owns the step
// state machine, validates every answer, and invokes the atomic
// cart-to-order commit on confirmation.
type CheckoutService struct {
	sessions session.Store
	locks    *session.Locks
	carts    repository.CartRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(
	sessions session.Store,
	locks *session.Locks,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		sessions: sessions,
		locks:    locks,
		carts:    carts,
		orders:   orders,
		logger:   logger,
	}
}

// Summary is the confirm-screen view: collected fields plus the live
// cart, recomputed on every render rather than cached.
type Summary struct {
	Fields     domain.OrderFields
	Items      []domain.CartItem
	TotalCents int64
}

// checkout steps in order; confirm is reached after comment
var checkoutOrder = []domain.Step{
	domain.StepName,
	domain.StepPhone,
	domain.StepCity,
	domain.StepDelivery,
	domain.StepAddress,
	domain.StepComment,
	domain.StepConfirm,
}

func nextStep(step domain.Step) domain.Step {
	for i, s := range checkoutOrder {
		if s == step && i+1 < len(checkoutOrder) {
			return checkoutOrder[i+1]
		}
	}
	return domain.StepConfirm
}

// fieldStep maps an editable field name to the step that collects it
var fieldStep = map[string]domain.Step{
	"name":     domain.StepName,
	"phone":    domain.StepPhone,
	"city":     domain.StepCity,
	"delivery": domain.StepDelivery,
	"address":  domain.StepAddress,
	"comment":  domain.StepComment,
}

// IsCheckoutStep reports whether a step belongs to the checkout flow
func IsCheckoutStep(step domain.Step) bool {
	for _, s := range checkoutOrder {
		if s == step {
			return true
		}
	}
	return false
}

// Cart returns the user's current cart lines
func (s *CheckoutService) Cart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	return s.carts.GetCart(ctx, userID)
}

// Current returns the user's session, nil when idle
func (s *CheckoutService) Current(ctx context.Context, userID int64) (*domain.Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.sessions.Get(ctx, userID)
}

// Start begins a checkout at the name step. Fails with
// domain.ErrCartEmpty when there is nothing to check out.
func (s *CheckoutService) Start(ctx context.Context, userID int64) (*domain.Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	items, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	sess := domain.NewSession(userID, domain.StepName)
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Input feeds a free-text answer into the current step. On a rejected
// value the session is unchanged and the returned error is a
// *ValidationError; the caller re-prompts for the same step. A nil
// session result means no checkout is in progress.
func (s *CheckoutService) Input(ctx context.Context, userID int64, text string) (*domain.Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil || !IsCheckoutStep(sess.Step) {
		return nil, nil
	}

	text = strings.TrimSpace(text)

	switch sess.Step {
	case domain.StepName:
		if !ValidMinLen(text, 2) {
			return sess, invalid(domain.FieldName, "name must be at least 2 characters")
		}
		s.accept(sess, domain.FieldName, text)

	case domain.StepPhone:
		phone := NormalizePhone(text)
		if !ValidPhone(phone) {
			return sess, invalid(domain.FieldPhone, "phone must be 9-15 digits, optionally starting with +")
		}
		s.accept(sess, domain.FieldPhone, phone)

	case domain.StepCity:
		if !ValidMinLen(text, 2) {
			return sess, invalid(domain.FieldCity, "city must be at least 2 characters")
		}
		s.accept(sess, domain.FieldCity, text)

	case domain.StepAddress:
		if !ValidMinLen(text, 5) {
			return sess, invalid(domain.FieldAddress, "address must be at least 5 characters")
		}
		s.accept(sess, domain.FieldAddress, text)

	case domain.StepComment:
		// optional: empty never blocks progress
		s.accept(sess, domain.FieldComment, text)

	default:
		// delivery and confirm are button-driven; free text re-prompts
		return sess, nil
	}

	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SelectDelivery handles the delivery-method button. Unknown tokens
// and taps outside the delivery step are ignored without state change.
func (s *CheckoutService) SelectDelivery(ctx context.Context, userID int64, method string) (*domain.Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Step != domain.StepDelivery {
		return nil, nil
	}
	if !domain.ValidDeliveryMethod(domain.DeliveryMethod(method)) {
		return nil, nil
	}

	s.accept(sess, domain.FieldDelivery, method)
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SkipComment records an omitted comment and moves to confirm. The
// omission is stored as the empty string, not a "none" marker; screens
// and queries treat empty as no comment.
func (s *CheckoutService) SkipComment(ctx context.Context, userID int64) (*domain.Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Step != domain.StepComment {
		return nil, nil
	}

	s.accept(sess, domain.FieldComment, "")
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// EditField jumps from confirm back to the step collecting the named
// field. Collected values stay intact; once the step accepts a new
// value the flow returns straight to confirm.
func (s *CheckoutService) EditField(ctx context.Context, userID int64, field string) (*domain.Session, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Step != domain.StepConfirm {
		return nil, nil
	}

	step, ok := fieldStep[field]
	if !ok {
		return nil, nil
	}

	sess.Step = step
	sess.Set(domain.FieldReturnTo, string(domain.StepConfirm))
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Summary recomputes the confirm view from the live cart. It holds the
// user's lock like every other reader so a concurrent step input can
// never interleave with reading the collected fields.
func (s *CheckoutService) Summary(ctx context.Context, userID int64) (*Summary, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, domain.ErrSessionExpired
	}

	items, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Fields:     orderFields(sess),
		Items:      items,
		TotalCents: domain.CartTotal(items),
	}, nil
}

// Confirm commits the cart as an order. Whatever the outcome, the
// session ends here: success renders the payment prompt, failure
// renders a retry message, and a fresh checkout starts from scratch.
func (s *CheckoutService) Confirm(ctx context.Context, userID int64) (int64, int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	defer func() {
		if err := s.sessions.Clear(ctx, userID); err != nil {
			s.logger.Warn("failed to clear session after confirm",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}()

	if sess == nil || !requiredFieldsPresent(sess) {
		return 0, 0, domain.ErrSessionExpired
	}

	orderID, total, err := s.orders.CreateFromCart(ctx, userID, orderFields(sess))
	if err != nil {
		return 0, 0, err
	}

	s.logger.Info("order committed",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", orderID),
		zap.Int64("total_cents", total),
	)
	return orderID, total, nil
}

// Cancel clears the session unconditionally
func (s *CheckoutService) Cancel(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.sessions.Clear(ctx, userID)
}

// accept writes the field and advances: linearly, or back to confirm
// when the step was re-entered through an edit jump
func (s *CheckoutService) accept(sess *domain.Session, field domain.Field, value string) {
	sess.Set(field, value)
	if sess.Get(domain.FieldReturnTo) == string(domain.StepConfirm) {
		delete(sess.Fields, domain.FieldReturnTo)
		sess.Step = domain.StepConfirm
		return
	}
	sess.Step = nextStep(sess.Step)
}

func requiredFieldsPresent(sess *domain.Session) bool {
	for _, f := range []domain.Field{
		domain.FieldName,
		domain.FieldPhone,
		domain.FieldCity,
		domain.FieldDelivery,
		domain.FieldAddress,
	} {
		if sess.Get(f) == "" {
			return false
		}
	}
	return true
}

func orderFields(sess *domain.Session) domain.OrderFields {
	return domain.OrderFields{
		Name:           sess.Get(domain.FieldName),
		Phone:          sess.Get(domain.FieldPhone),
		City:           sess.Get(domain.FieldCity),
		DeliveryMethod: domain.DeliveryMethod(sess.Get(domain.FieldDelivery)),
		Address:        sess.Get(domain.FieldAddress),
		Comment:        sess.Get(domain.FieldComment),
	}
}
