package domain

import "time"

// Step identifies the current position in a conversation flow
type Step string

const (
	// Checkout flow, in order
	StepName     Step = "name"
	StepPhone    Step = "phone"
	StepCity     Step = "city"
	StepDelivery Step = "delivery"
	StepAddress  Step = "address"
	StepComment  Step = "comment"
	StepConfirm  Step = "confirm"

	// Admin wizards share the same session machinery
	StepAdminCategoryName   Step = "adm_cat_name"
	StepAdminCategoryRename Step = "adm_cat_rename"
	StepAdminProductTitle   Step = "adm_prod_title"
	StepAdminProductPrice   Step = "adm_prod_price"
	StepAdminProductStock   Step = "adm_prod_stock"
	StepAdminProductValue   Step = "adm_prod_value"
)

// Field names a collected checkout value inside Session.Fields
type Field string

const (
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldCity     Field = "city"
	FieldDelivery Field = "delivery_method"
	FieldAddress  Field = "address"
	FieldComment  Field = "comment"

	// FieldReturnTo marks a jump-back edit: after the re-entered step
	// accepts its value the flow returns to confirm instead of advancing
	FieldReturnTo Field = "return_to"

	// Wizard context carried between admin steps
	FieldCategoryID   Field = "category_id"
	FieldProductID    Field = "product_id"
	FieldProductField Field = "product_field"
	FieldProductTitle Field = "product_title"
	FieldProductPrice Field = "product_price"
)

// Session is one user's in-flight conversation state. Exactly one
// session exists per user at a time; absent means idle.
type Session struct {
	UserID    int64            `json:"user_id"`
	Step      Step             `json:"step"`
	Fields    map[Field]string `json:"fields"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewSession creates a session positioned at the given step
func NewSession(userID int64, step Step) *Session {
	return &Session{
		UserID:    userID,
		Step:      step,
		Fields:    make(map[Field]string),
		CreatedAt: time.Now(),
	}
}

// Get returns a collected field value, empty when unset
func (s *Session) Get(f Field) string {
	if s.Fields == nil {
		return ""
	}
	return s.Fields[f]
}

// Set stores a collected field value
func (s *Session) Set(f Field, v string) {
	if s.Fields == nil {
		s.Fields = make(map[Field]string)
	}
	s.Fields[f] = v
}

// Clone returns an independent copy with its own Fields map, so a
// caller holding the copy never shares mutable state with the store
func (s *Session) Clone() *Session {
	c := *s
	c.Fields = make(map[Field]string, len(s.Fields))
	for k, v := range s.Fields {
		c.Fields[k] = v
	}
	return &c
}

// ExpiredAt reports whether the session is older than ttl at the given
// instant. A zero ttl means sessions never expire.
func (s *Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.CreatedAt) > ttl
}
