package client

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Consultation
// ─────────────────────────────────────────────────────────────────────────────

// Classification is the category a problem description was assigned to.
type Classification struct {
	Specialization  string   `json:"specialization"`
	SubSpecialty    string   `json:"subSpecialty"`
	Confidence      int      `json:"confidence"`
	ConfidenceLevel string   `json:"confidenceLevel"`
	MatchType       string   `json:"matchType"`
	MatchedKeywords []string `json:"matchedKeywords"`
	Severity        string   `json:"severity"`
	Urgency         string   `json:"urgency"`
	RelevantLaws    []string `json:"relevantLaws"`
	Description     string   `json:"description"`
	Source          string   `json:"source"`
}

// ScoredLawyer is a roster entry ranked against a classification.
type ScoredLawyer struct {
	Lawyer
	MatchScore  int    `json:"matchScore"`
	MatchReason string `json:"matchReason"`
}

// Matches groups ranked lawyers by tier.  All is sorted by score.
type Matches struct {
	Exact   []ScoredLawyer `json:"exact"`
	Related []ScoredLawyer `json:"related"`
	General []ScoredLawyer `json:"general"`
	All     []ScoredLawyer `json:"all"`
}

// Analysis is a classification together with the matching lawyers.
type Analysis struct {
	Classification Classification `json:"classification"`
	Specialization string         `json:"specialization"`
	Lawyers        Matches        `json:"lawyers"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Directory
// ─────────────────────────────────────────────────────────────────────────────

// Lawyer is a roster entry.
type Lawyer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	SubSpecialty   string    `json:"sub_specialty"`
	Experience     int       `json:"experience"`
	Location       string    `json:"location"`
	Fee            float64   `json:"fee"`
	About          string    `json:"about"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// NewLawyer is the body of a roster addition.
type NewLawyer struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	SubSpecialty   string  `json:"sub_specialty,omitempty"`
	Experience     int     `json:"experience"`
	Location       string  `json:"location"`
	Fee            float64 `json:"fee"`
	About          string  `json:"about,omitempty"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
}

// Specialization summarises one knowledge base category.
type Specialization struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	RosterSpecialization string   `json:"roster_specialization"`
	SubSpecialties       []string `json:"sub_specialties"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Accounts
// ─────────────────────────────────────────────────────────────────────────────

// User is a registered account without credentials.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Registration is the body of a sign-up.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Bookings
// ─────────────────────────────────────────────────────────────────────────────

// Booking states.
const (
	BookingPendingPayment = "pending_payment"
	BookingConfirmed      = "confirmed"
	BookingCancelled      = "cancelled"
)

// Payment methods.
const (
	MethodCard       = "card"
	MethodUPI        = "upi"
	MethodNetBanking = "netbanking"
)

// Payment records a settled consultation fee.
type Payment struct {
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
	ReceiptKey    string    `json:"receipt_key,omitempty"`
}

// Booking is a scheduled consultation.
type Booking struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	LawyerID        string    `json:"lawyer_id"`
	CaseDescription string    `json:"case_description"`
	City            string    `json:"city,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	SubSpecialty    string    `json:"sub_specialty,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Fee             float64   `json:"fee"`
	Status          string    `json:"status"`
	Payment         *Payment  `json:"payment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewBooking is the body of a booking request.
type NewBooking struct {
	UserID          string    `json:"user_id"`
	LawyerID        string    `json:"lawyer_id"`
	CaseDescription string    `json:"case_description"`
	City            string    `json:"city,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	SubSpecialty    string    `json:"sub_specialty,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
}

// PaymentRequest settles a booking's fee.
type PaymentRequest struct {
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	CardNumber string  `json:"card_number,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

//Personal.AI order the ending
